package ttsinput

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/tts-flow/internal/dialogue"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// writeDialogueSheet renders the extracted dialogue as a numbered .docx list
// for the narrator, followed by any skipped lines.
func writeDialogueSheet(title string, res dialogue.Result, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for i, d := range res.Dialogues {
		p := doc.AddParagraph("")
		addStyledRun(p, fmt.Sprintf("%d. ", i+1), true, fontSize)
		addStyledRun(p, d, false, fontSize)
	}

	if len(res.Warnings) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Skipped lines", true, 14)
		for _, w := range res.Warnings {
			addStyledRun(doc.AddParagraph(""), w.String(), false, fontSize)
		}
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
