// Package classify determines, for a single file, whether it is binary or
// text, which language it belongs to, and which text encoding it uses.
package classify

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// probeLength bounds the byte prefix read when sniffing file content.
const probeLength = 1024

// Encoding tags reported by DetectEncoding.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingUnknown = "unknown"
)

// binaryExtensions is the fast-path lookup table of extensions that are
// always treated as binary without inspecting content.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".webp": {}, ".tiff": {}, ".psd": {},
	".mp3": {}, ".wav": {}, ".flac": {}, ".ogg": {}, ".m4a": {},
	".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".webm": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".7z": {}, ".rar": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".a": {}, ".o": {},
	".class": {}, ".jar": {}, ".war": {}, ".pyc": {}, ".pyo": {}, ".wasm": {},
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {}, ".eot": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".sqlite": {}, ".db": {}, ".bin": {}, ".dat": {}, ".iso": {}, ".dmg": {},
}

// Classification is the result of classifying a single file path.
type Classification struct {
	Binary   bool
	Language string
	Encoding string
}

// Classifier classifies files by name and a bounded byte sample. The zero
// value is not usable; construct instances with NewClassifier.
type Classifier struct {
	probeLength int
}

// NewClassifier returns a Classifier with the default probe length.
func NewClassifier() *Classifier {
	return &Classifier{probeLength: probeLength}
}

// Classify resolves the binary flag, language tag, and encoding tag for the
// file at filePath. It never returns an error: probe failures degrade to a
// binary classification and an unknown encoding.
func (classifier *Classifier) Classify(filePath string) Classification {
	baseName := filepath.Base(filePath)
	languageName, _ := DetectLanguage(baseName)

	result := Classification{Language: languageName}

	probe, probeError := classifier.readProbe(filePath)
	if classifier.isBinary(filePath, probe, probeError) {
		result.Binary = true
		return result
	}

	if probeError != nil {
		result.Encoding = EncodingUnknown
		return result
	}
	result.Encoding = DetectEncoding(probe)
	return result
}

// isBinary applies the detection steps in order, short-circuiting on the
// first one that decides: extension table, zero-byte exemption, MIME lookup,
// and finally a NUL-byte probe. A probe read failure counts as binary.
func (classifier *Classifier) isBinary(filePath string, probe []byte, probeError error) bool {
	extension := strings.ToLower(filepath.Ext(filePath))
	if _, isKnownBinary := binaryExtensions[extension]; isKnownBinary {
		return true
	}

	if probeError == nil && len(probe) == 0 {
		return false
	}

	// A language-table hit means the extension names a known text format, so
	// the MIME step is skipped. System mime tables map a few source
	// extensions to media types (.ts to video/mp2t, for one) and would
	// otherwise misclassify them.
	if _, isKnownLanguage := DetectLanguage(filepath.Base(filePath)); !isKnownLanguage {
		mimeType := mime.TypeByExtension(extension)
		if mimeType != "" && isBinaryMimeType(mimeType) {
			return true
		}
	}

	if probeError != nil {
		return true
	}
	return bytes.IndexByte(probe, 0) >= 0
}

// isBinaryMimeType reports whether a MIME type denotes non-textual content.
func isBinaryMimeType(mimeType string) bool {
	lowerMimeType := strings.ToLower(mimeType)
	if strings.HasPrefix(lowerMimeType, "text/") {
		return false
	}
	if strings.Contains(lowerMimeType, "json") || strings.Contains(lowerMimeType, "xml") {
		return false
	}
	return true
}

// readProbe reads up to the configured probe length from the file.
func (classifier *Classifier) readProbe(filePath string) ([]byte, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, classifier.probeLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && !errors.Is(readError, io.EOF) {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}

// DetectEncoding sniffs a byte prefix for a byte-order mark. UTF-8 is assumed
// when no mark is present.
func DetectEncoding(prefix []byte) string {
	switch {
	case len(prefix) >= 3 && prefix[0] == 0xEF && prefix[1] == 0xBB && prefix[2] == 0xBF:
		return EncodingUTF8
	case len(prefix) >= 2 && prefix[0] == 0xFF && prefix[1] == 0xFE:
		return EncodingUTF16LE
	case len(prefix) >= 2 && prefix[0] == 0xFE && prefix[1] == 0xFF:
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

// CountLines returns the number of newline-delimited segments in text. The
// convention is len(split-on-newline): "hello\nworld" counts 2 lines, a file
// with a trailing newline counts the empty tail, and an empty file counts 1.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}
