// Package prompt assembles the instruction text sent to the quiz model.
package prompt

import "slide-quiz/internal/extract"

// TaskInstruction closes every prompt.
const TaskInstruction = "Use the above data to give me few revision quiz questions along with multi choice answers"

const (
	notesHeader      = "NOTES : \n\n"
	imageTextHeader  = "SLIDE-IMAGE-TEXT :\n\n"
	slideTextsHeader = "\n\nSLIDE-TEXTS : \n\n"
	sectionBreak     = "\n\n"
)

// BuildFromNotes wraps normalized notes text. Empty notes still produce a
// well-formed prompt.
func BuildFromNotes(text string) string {
	return notesHeader + extract.Normalize(text) + sectionBreak + TaskInstruction
}

// BuildFromDocument combines the OCR text of the slide images with the slide
// text layer. Both inputs are used as given.
func BuildFromDocument(imageText, pageText string) string {
	return imageTextHeader + imageText + slideTextsHeader + pageText + sectionBreak + TaskInstruction
}
