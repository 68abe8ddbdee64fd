package document

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/interval"
)

// WriteOption configures WriteJSON, WriteYAML and Export.
type WriteOption func(*writeConfig)

type writeConfig struct {
	locations bool
}

// WithLocations writes annotation coordinates as 1-based interchange
// "location" strings instead of "span" text.
func WithLocations() WriteOption {
	return func(c *writeConfig) { c.locations = true }
}

func (d *Document) file(opts []WriteOption) file {
	var cfg writeConfig
	for _, o := range opts {
		o(&cfg)
	}
	out := file{
		Name:     d.Name,
		Circular: d.Circular,
		Sequence: d.sequence,
	}
	for _, a := range d.Annotations.All() {
		e := fileEntry{ID: a.ID, Name: a.Caption, Type: a.Type, Attributes: a.Attributes}
		if cfg.locations {
			e.Location = interval.FormatInterchange(a.Span)
		} else {
			e.Span = a.Span.String()
		}
		out.Annotations = append(out.Annotations, e)
	}
	if sel := d.Selection.Ranges(); len(sel) > 0 && !(len(sel) == 1 && sel[0] == interval.Cursor(0)) {
		out.Selection = d.Selection.String()
	}
	return out
}

// WriteJSON encodes d as indented JSON. The output can be read back with
// ReadJSON.
func WriteJSON(d *Document, w io.Writer, opts ...WriteOption) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.file(opts)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteYAML encodes d as YAML.
func WriteYAML(d *Document, w io.Writer, opts ...WriteOption) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.file(opts)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}

// Write encodes d in the given format.
func Write(d *Document, w io.Writer, format Format, opts ...WriteOption) error {
	if format == FormatYAML {
		return WriteYAML(d, w, opts...)
	}
	return WriteJSON(d, w, opts...)
}

// Export writes d to path, choosing the format from its extension.
func Export(d *Document, path string, opts ...WriteOption) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(d, f, FormatFromPath(path), opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
