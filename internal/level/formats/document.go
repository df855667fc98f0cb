package formats

import (
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/level"
)

// document is the shared shape of structured level files:
//
//	name: Tutorial
//	width: 6
//	height: 5
//	playerStart: {x: 1, y: 1}
//	grid: ["######", "#@ $.#", ...]
type document struct {
	Name        string   `json:"name" yaml:"name"`
	Width       int      `json:"width" yaml:"width"`
	Height      int      `json:"height" yaml:"height"`
	PlayerStart position `json:"playerStart" yaml:"playerStart"`
	Grid        []string `json:"grid" yaml:"grid"`
}

type position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (d document) definition() level.Definition {
	return level.Definition{
		Name:        d.Name,
		Width:       d.Width,
		Height:      d.Height,
		PlayerStart: core.Pt(d.PlayerStart.X, d.PlayerStart.Y),
		Grid:        append([]string(nil), d.Grid...),
	}
}

func fromDefinition(def level.Definition) document {
	return document{
		Name:        def.Name,
		Width:       def.Width,
		Height:      def.Height,
		PlayerStart: position{X: def.PlayerStart.X, Y: def.PlayerStart.Y},
		Grid:        def.Grid,
	}
}
