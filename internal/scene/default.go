package scene

// DefaultFile returns the demo scene: a 32x10 bordered panel holding three
// bordered panels, a progress bar and a greeting.
func DefaultFile() File {
	five := 5
	return File{
		Input: "greeting",
		Root: Node{
			Kind: KindPanel, Name: "main",
			Width: 32, Height: 10, Border: true,
			Children: []Node{
				{
					Kind: KindPanel, X: 9, Y: 3, Width: 9, Height: 4, Border: true,
					Children: []Node{
						{Kind: KindProgress, Name: "progress", X: 1, Y: 1, Width: 8, Value: &five},
					},
				},
				{Kind: KindPanel, X: 3, Y: 2, Width: 10, Height: 4, Border: true},
				{Kind: KindPanel, X: 15, Y: 4, Width: 8, Height: 5, Border: true},
				{Kind: KindLabel, Name: "greeting", X: 1, Y: 1, Text: "Hello!"},
			},
		},
	}
}

// Default builds the demo scene.
func Default() *Scene {
	s, err := Build(DefaultFile())
	if err != nil {
		panic("scene: default scene: " + err.Error())
	}
	return s
}
