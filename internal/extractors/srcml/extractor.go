package srcml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// Element and attribute names used by srcML.
const (
	unitElement         = "unit"
	compileErrorElement = "compile-error"
	compileSuccessAttr  = "compile-success"
	versionAttr         = "version"
	startAttr           = "start"
	endAttr             = "end"
)

// Ensure Extractor implements the interface.
var _ driven.DiagnosticExtractor = (*Extractor)(nil)

// Extractor reads diagnostics from srcML files.
type Extractor struct{}

// New creates a new srcML extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractFile returns every diagnostic in the file at path.
// A file that cannot be read or parsed yields nothing; the failure is logged
// and never returned, so one bad file cannot abort its siblings.
func (e *Extractor) ExtractFile(path string) []domain.Diagnostic {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Could not open %s: %v", path, err)
		return nil
	}
	defer f.Close()

	diagnostics, err := Parse(f, path)
	if err != nil {
		logger.Warn("Could not parse %s: %v", path, err)
		return nil
	}
	return diagnostics
}

// frame tracks one open element while decoding.
type frame struct {
	unit    bool
	failed  bool
	version string
	rank    int

	// diagnostic is set on the compile-error frame being collected.
	diagnostic *domain.Diagnostic
}

// Parse reads one srcML document and returns its diagnostics, stamped with
// path. Either the whole document parses and every diagnostic is returned,
// or an error wrapping domain.ErrMalformedRecord is returned with none.
func Parse(r io.Reader, path string) ([]domain.Diagnostic, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		diagnostics []domain.Diagnostic
		stack       []*frame
		text        strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{}
			switch t.Name.Local {
			case unitElement:
				f.unit = true
				f.failed = attr(t, compileSuccessAttr) == "false"
				f.version = attr(t, versionAttr)

			case compileErrorElement:
				// Only direct children of a failed unit are diagnostics.
				parent := top(stack)
				if parent == nil || !parent.unit || !parent.failed {
					break
				}
				version, err := strconv.Atoi(parent.version)
				if err != nil {
					return nil, fmt.Errorf("%w: failed unit has bad version %q", domain.ErrMalformedRecord, parent.version)
				}
				parent.rank++
				f.diagnostic = &domain.Diagnostic{
					Path:    path,
					Version: version,
					Rank:    parent.rank,
					Start:   attr(t, startAttr),
					End:     attr(t, endAttr),
				}
				text.Reset()
			}
			stack = append(stack, f)

		case xml.CharData:
			if f := top(stack); f != nil && f.diagnostic != nil {
				text.Write(t)
			}

		case xml.EndElement:
			f := top(stack)
			if f == nil {
				return nil, fmt.Errorf("%w: unbalanced element %s", domain.ErrMalformedRecord, t.Name.Local)
			}
			stack = stack[:len(stack)-1]
			if f.diagnostic != nil {
				f.diagnostic.Text = DecodeEscapes(text.String())
				diagnostics = append(diagnostics, *f.diagnostic)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unexpected end of document", domain.ErrMalformedRecord)
	}
	return diagnostics, nil
}

func top(stack []*frame) *frame {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
