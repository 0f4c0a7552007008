// manhattan-save prints or clears the Paint Manhattan savegame.
//
// Usage:
//
//	manhattan-save [-path savegame.json] [-id paint-manhattan/1] [-clear]
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/toolness/paint-manhattan"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	labelStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("8"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	nextStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func main() {
	path := flag.String("path", manhattan.DefaultSavePath(), "savegame file")
	id := flag.String("id", manhattan.DefaultOptions().Game.SavegameID, "expected savegame id")
	clearSave := flag.Bool("clear", false, "delete the savegame")
	flag.Parse()

	if *clearSave {
		manhattan.NewFileStorage(*path, *id).Save(nil)
		fmt.Println(titleStyle.Render("Savegame cleared."))
		return
	}

	info, err := manhattan.InspectSavegame(*path)
	if err != nil {
		log.Fatal(err)
	}
	if info == nil {
		fmt.Println("No savegame at " + *path)
		return
	}
	fmt.Println(render(*path, *id, info))
}

func render(path, id string, info *manhattan.SavegameInfo) string {
	rows := []string{
		titleStyle.Render("Paint Manhattan savegame"),
		labelStyle.Render("file") + path,
		labelStyle.Render("id") + info.ID,
	}
	if info.ID != id {
		rows = append(rows, warnStyle.Render(fmt.Sprintf("id does not match %q; the game will ignore this file", id)))
	}
	sg := info.Gameplay
	if sg == nil {
		rows = append(rows, warnStyle.Render("no game in progress"))
		return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	rows = append(rows,
		labelStyle.Render("score")+fmt.Sprint(sg.Score),
		labelStyle.Render("progress")+fmt.Sprintf("%d of %d streets", sg.NextStreetIndex, len(sg.StreetList)),
	)
	if sg.NextStreetHasMissedOnce != nil && *sg.NextStreetHasMissedOnce {
		rows = append(rows, labelStyle.Render("")+"missed the next street once")
	}
	var streets []string
	for i, name := range sg.StreetList {
		switch {
		case i < sg.NextStreetIndex:
			streets = append(streets, doneStyle.Render("  "+name))
		case i == sg.NextStreetIndex:
			streets = append(streets, nextStyle.Render("> "+name))
		default:
			streets = append(streets, "  "+name)
		}
	}
	rows = append(rows, "", strings.Join(streets, "\n"))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
