package actions

// English label text for the built-in actions. Labels without an entry are
// shown as is.
var englishLabels = map[string]string{
	"buttons.whiteboardMode":  "Whiteboard mode",
	"toolBar.selection":       "Tool",
	"toolBar.rectangle":       "Rectangle",
	"labels.stroke":           "Stroke colour",
	"labels.background":       "Background colour",
	"labels.pasteStrokeColor": "Paste stroke colour",
	"labels.strokeWidth":      "Stroke width",
	"labels.opacity":          "Opacity",
	"labels.move":             "Move selection",
	"labels.delete":           "Delete",
	"labels.selectAll":        "Select all",
	"labels.clearSelection":   "Clear selection",
	"labels.select":           "Select at point",
	"labels.left":             "Previous page",
	"labels.right":            "Next page",
	"labels.viewMode":         "View mode",
}

// Translate returns the English text for a label key, or "" when unknown so
// the caller keeps the key.
func Translate(key string) string {
	return englishLabels[key]
}
