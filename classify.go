package uploadkit

import (
	"regexp"
	"strings"
)

// Category is a coarse classification bucket derived from a file extension.
type Category string

const (
	CategoryDocument   Category = "document"
	CategoryImage      Category = "image"
	CategoryAudio      Category = "audio"
	CategoryVideo      Category = "video"
	CategoryCode       Category = "code"
	CategoryCompressed Category = "compressed"
	CategoryOther      Category = "other"
)

// Categories lists every category Classify can return.
var Categories = []Category{
	CategoryDocument,
	CategoryImage,
	CategoryAudio,
	CategoryVideo,
	CategoryCode,
	CategoryCompressed,
	CategoryOther,
}

// Common MIME types
const (
	MIMETypeOctetStream = "application/octet-stream"
	MIMETypeTextPlain   = "text/plain"
	MIMETypeTextHTML    = "text/html"
	MIMETypeImageJPEG   = "image/jpeg"
	MIMETypeImageTIFF   = "image/tiff"
	MIMETypeImageSVG    = "image/svg+xml"
	MIMETypeApplPDF     = "application/pdf"
	MIMETypeApplZip     = "application/zip"
	MIMETypePostScript  = "application/postscript"
	MIMETypeMSDownload  = "application/x-msdownload"
)

var extensionToCategory = map[string]Category{
	".pdf":  CategoryDocument,
	".doc":  CategoryDocument,
	".rtf":  CategoryDocument,
	".txt":  CategoryDocument,
	".docx": CategoryDocument,
	".xls":  CategoryDocument,
	".xlsx": CategoryDocument,
	".csv":  CategoryDocument,
	".odt":  CategoryDocument,
	".ods":  CategoryDocument,

	".png":  CategoryImage,
	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".gif":  CategoryImage,
	".bmp":  CategoryImage,
	".psd":  CategoryImage,
	".tif":  CategoryImage,
	".tiff": CategoryImage,
	".webp": CategoryImage,

	".mp3": CategoryAudio,
	".wav": CategoryAudio,
	".wma": CategoryAudio,
	".m4a": CategoryAudio,
	".m3u": CategoryAudio,
	".aac": CategoryAudio,

	".3g2": CategoryVideo,
	".3gp": CategoryVideo,
	".asf": CategoryVideo,
	".asx": CategoryVideo,
	".avi": CategoryVideo,
	".flv": CategoryVideo,
	".m4v": CategoryVideo,
	".mov": CategoryVideo,
	".mp4": CategoryVideo,
	".mpg": CategoryVideo,
	".srt": CategoryVideo,
	".swf": CategoryVideo,
	".vob": CategoryVideo,
	".wmv": CategoryVideo,

	".css":  CategoryCode,
	".php":  CategoryCode,
	".php3": CategoryCode,
	".sql":  CategoryCode,
	".cs":   CategoryCode,
	".html": CategoryCode,
	".less": CategoryCode,
	".xml":  CategoryCode,

	".zip":  CategoryCompressed,
	".gzip": CategoryCompressed,
	".gz":   CategoryCompressed,
	".7z":   CategoryCompressed,
	".tar":  CategoryCompressed,
	".rar":  CategoryCompressed,
}

var extensionToMIME = map[string]string{
	".txt":  MIMETypeTextPlain,
	".htm":  MIMETypeTextHTML,
	".html": MIMETypeTextHTML,
	".php":  MIMETypeTextHTML,
	".css":  "text/css",
	".csv":  "text/csv",
	".js":   "application/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".swf":  "application/x-shockwave-flash",
	".flv":  "video/x-flv",

	// images
	".png":  "image/png",
	".jpe":  MIMETypeImageJPEG,
	".jpeg": MIMETypeImageJPEG,
	".jpg":  MIMETypeImageJPEG,
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".ico":  "image/vnd.microsoft.icon",
	".tiff": MIMETypeImageTIFF,
	".tif":  MIMETypeImageTIFF,
	".svg":  MIMETypeImageSVG,
	".svgz": MIMETypeImageSVG,
	".webp": "image/webp",

	// archives
	".zip": MIMETypeApplZip,
	".rar": "application/x-rar-compressed",
	".exe": MIMETypeMSDownload,
	".msi": MIMETypeMSDownload,
	".cab": "application/vnd.ms-cab-compressed",
	".gz":  "application/gzip",
	".tar": "application/x-tar",
	".7z":  "application/x-7z-compressed",

	// audio/video
	".mp3":  "audio/mpeg",
	".qt":   "video/quicktime",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".mp4":  "video/mp4",
	".mp4a": "audio/mp4",
	".mpeg": "video/mpeg",

	// adobe
	".pdf": MIMETypeApplPDF,
	".psd": "image/vnd.adobe.photoshop",
	".ai":  MIMETypePostScript,
	".eps": MIMETypePostScript,
	".ps":  MIMETypePostScript,

	// ms office
	".doc":  "application/msword",
	".rtf":  "application/rtf",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".ppt":  "application/vnd.ms-powerpoint",

	// open office
	".odt": "application/vnd.oasis.opendocument.text",
	".ods": "application/vnd.oasis.opendocument.spreadsheet",
}

var (
	lastSegmentRe = regexp.MustCompile(`\.[^.]+$`)
	leadingWordRe = regexp.MustCompile(`\.\w+`)
)

// Info is the name-derived classification of a file.
type Info struct {
	Extension string
	BaseName  string
	Category  Category
	MIMEType  string
}

// Classify derives extension, base name, category and MIME type from a file
// name. It never fails: unknown extensions map to CategoryOther and
// MIMETypeOctetStream.
func Classify(name string) Info {
	ext := Extension(name)
	return Info{
		Extension: ext,
		BaseName:  baseName(name, ext),
		Category:  CategoryForExtension(ext),
		MIMEType:  MIMETypeForExtension(ext),
	}
}

// Extension returns the final dot-segment of name narrowed to its leading
// word characters, keeping the original case. "archive.tar.gz" yields ".gz",
// "photo.jpg?v=2" yields ".jpg" and a name without a dot yields "".
func Extension(name string) string {
	return leadingWordRe.FindString(lastSegmentRe.FindString(name))
}

// CategoryForExtension looks up the category of ext, case-insensitively.
func CategoryForExtension(ext string) Category {
	if c, ok := extensionToCategory[strings.ToLower(ext)]; ok {
		return c
	}
	return CategoryOther
}

// MIMETypeForExtension looks up the MIME type of ext, case-insensitively.
func MIMETypeForExtension(ext string) string {
	if t, ok := extensionToMIME[strings.ToLower(ext)]; ok {
		return t
	}
	return MIMETypeOctetStream
}

// baseName strips any directory part and then the extension suffix, unless
// the suffix is the whole remaining name.
func baseName(name, ext string) string {
	name = strings.TrimRight(name, `/\`)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if ext != "" && name != ext && strings.HasSuffix(name, ext) {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
