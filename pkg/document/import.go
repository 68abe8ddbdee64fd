package document

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqmap/pkg/annotation"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
	"github.com/matzehuels/seqmap/pkg/selection"
)

// Format is a document file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything other than
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q (use json or yaml)", s)
	}
}

type file struct {
	Name        string      `json:"name" yaml:"name"`
	Circular    bool        `json:"circular" yaml:"circular"`
	Sequence    string      `json:"sequence" yaml:"sequence"`
	Annotations []fileEntry `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Selection   string      `json:"selection,omitempty" yaml:"selection,omitempty"`
}

type fileEntry struct {
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string            `json:"name" yaml:"name"`
	Type       string            `json:"type,omitempty" yaml:"type,omitempty"`
	Span       string            `json:"span,omitempty" yaml:"span,omitempty"`
	Location   string            `json:"location,omitempty" yaml:"location,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ReadJSON decodes a JSON document from r.
//
// ReadJSON returns an error if the JSON is malformed, the sequence holds
// characters other than IUPAC nucleotide codes, an annotation has neither
// or both of "span" and "location", a span fails to parse, a range runs past
// the end of the sequence, or two annotations share an ID. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return f.document()
}

// ReadYAML decodes a YAML document from r. It applies the same checks as
// ReadJSON.
func ReadYAML(r io.Reader) (*Document, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return f.document()
}

// Read decodes a document in the given format.
func Read(r io.Reader, format Format) (*Document, error) {
	if format == FormatYAML {
		return ReadYAML(r)
	}
	return ReadJSON(r)
}

// Import reads the document file at path, choosing the format from its
// extension.
func Import(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}

func (f file) document() (*Document, error) {
	d, err := New(f.Name, f.Sequence, f.Circular)
	if err != nil {
		return nil, err
	}
	for i, e := range f.Annotations {
		a, err := e.annotation(i)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "annotation %d", i)
		}
		if err := d.AddAnnotation(a); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(f.Selection) != "" {
		var sel selection.Selection
		if err := sel.UnmarshalText([]byte(f.Selection)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "selection")
		}
		if err := d.Select(sel.Ranges()...); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// annotation converts e. Entries without an ID get one derived from their
// content and index so repeated imports of one file agree.
func (e fileEntry) annotation(index int) (annotation.Annotation, error) {
	var (
		sp  interval.Span
		err error
	)
	switch {
	case e.Span != "" && e.Location != "":
		return annotation.Annotation{}, errors.New(errors.ErrCodeInvalidInput, "%q has both span and location", e.Name)
	case e.Span != "":
		sp, err = interval.ParseSpan(e.Span)
	case e.Location != "":
		sp, err = interval.ParseInterchange(e.Location)
	default:
		return annotation.Annotation{}, errors.New(errors.ErrCodeInvalidInput, "%q has no span or location", e.Name)
	}
	if err != nil {
		return annotation.Annotation{}, err
	}
	id := e.ID
	if id == "" {
		id = annotation.DeriveID(e.Name, e.Type, sp.String(), strconv.Itoa(index))
	}
	return annotation.Annotation{
		ID:         id,
		Caption:    e.Name,
		Type:       e.Type,
		Span:       sp,
		Attributes: e.Attributes,
	}, nil
}
