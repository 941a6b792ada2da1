package domain

// DocumentMimeType is the document type evaluated by the must-OCR and
// word-count rules and re-imported by the structured pass.
const DocumentMimeType = "application/pdf"

// DocumentExtension is the file extension of structured OCR output.
const DocumentExtension = "pdf"

// TextExtension is the file extension of plain-text OCR output.
const TextExtension = "txt"

// ImageMimeTypes are the image types evaluated by the size rules.
var ImageMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/vnd.ms-emf",
	"image/bmp",
	"image/tiff",
}

// exportExtensions maps exportable types to the file extension used
// for the exported copy.
var exportExtensions = map[string]string{
	"application/pdf":                      "pdf",
	"image/bmp":                            "bmp",
	"image/cgm":                            "cgm",
	"image/gif":                            "gif",
	"image/jp2":                            "jp2",
	"image/jpeg":                           "jpeg",
	"image/pcx":                            "pcx",
	"image/png":                            "png",
	"image/svg+xml":                        "svg",
	"image/tga":                            "tga",
	"image/tiff":                           "tiff",
	"image/vnd.apple-quickdraw":            "pct",
	"image/vnd.autocad-dwg":                "dwg",
	"image/vnd.autocad-dxf":                "dxf",
	"image/vnd.corel-draw":                 "cdr",
	"image/vnd.corel-ventura":              "img",
	"image/vnd.corel-wordperfect-graphics": "wpg",
	"image/vnd.justsystem-hanako":          "jsh",
	"image/vnd.lotus-amidraw":              "sdw",
	"image/vnd.lotus-freelance":            "drw",
	"image/vnd.lotus-notes-bitmap":         "dat",
	"image/vnd.micrografx-draw":            "drw",
	"image/vnd.microsoft.icon":             "ico",
	"image/vnd.ms-ani":                     "ani",
	"image/vnd.ms-dib":                     "dib",
	"image/vnd.ms-emf":                     "emf",
	"image/vnd.ms-windows-cursor":          "cur",
	"image/vnd.ms-wmf":                     "wmf",
	"image/vnd.wap.wbmp":                   "wbmp",
	"image/x-pict":                         "pict",
	"image/x-portable-bitmap":              "pbm",
	"image/x-portable-graymap":             "pgm",
	"image/x-portable-pixmap":              "ppm",
	"image/x-raw-bitmap":                   "raw",
	"image/x-targa":                        "tga",
	"image/x-xbitmap":                      "xbm",
	"image/x-xpixmap":                      "xpm",
}

// ExportExtension returns the export file extension for a type.
// The boolean is false when the type cannot be exported for OCR.
func ExportExtension(mimeType string) (string, bool) {
	ext, ok := exportExtensions[mimeType]
	return ext, ok
}

