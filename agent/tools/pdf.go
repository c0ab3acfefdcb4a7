package tools

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractTextOp extracts the plain text of a PDF file, page by page.
type ExtractTextOp struct{}

// NewExtractTextOp creates the extract_text operation.
func NewExtractTextOp() *ExtractTextOp {
	return &ExtractTextOp{}
}

func (o *ExtractTextOp) Name() string {
	return "extract_text"
}

func (o *ExtractTextOp) Description() string {
	return "Extracts text content from a PDF file given its path. " +
		"The file is expected to be accessible at the given path."
}

func (o *ExtractTextOp) Params() []Param {
	return []Param{
		{Name: "path", Type: "string", Description: "Filesystem path of the PDF file to read"},
	}
}

// Execute reads every page in order and joins the page texts with a newline.
// Failure comes back as an "Error extracting text from PDF at <path>: "
// prefixed Result, never as a panic or Go error: callers detect failure by
// prefix so the agent loop can surface it verbatim.
func (o *ExtractTextOp) Execute(_ context.Context, args map[string]string) (res *Result) {
	path := args["path"]

	// The pdf package panics on some malformed files; fold that into the
	// same error-text contract as ordinary failures.
	defer func() {
		if r := recover(); r != nil {
			res = extractFailure(path, fmt.Errorf("%v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return extractFailure(path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return extractFailure(path, fmt.Errorf("page %d: %w", i, err))
		}
		pages = append(pages, text)
	}

	return &Result{Output: strings.Join(pages, "\n")}
}

func extractFailure(path string, err error) *Result {
	return &Result{
		Output: fmt.Sprintf("Error extracting text from PDF at %s: %v\n%s", path, err, debug.Stack()),
		Failed: true,
	}
}
