package server

import (
	"bytes"
	"encoding/json"
	"maps"
	"net/http"

	"github.com/matzehuels/seqmap/pkg/buildinfo"
	"github.com/matzehuels/seqmap/pkg/document"
	"github.com/matzehuels/seqmap/pkg/edit"
	"github.com/matzehuels/seqmap/pkg/errors"
	"github.com/matzehuels/seqmap/pkg/pipeline"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type documentRequest struct {
	Document json.RawMessage `json:"document"`
	Options  json.RawMessage `json:"options,omitempty"`
}

type renderRequest struct {
	documentRequest
	Format string `json:"format,omitempty"`
}

type editRequest struct {
	Document  json.RawMessage `json:"document"`
	Edits     []edit.Op       `json:"edits"`
	Locations bool            `json:"locations,omitempty"`
}

type notationRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type notationResponse struct {
	Text string `json:"text"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Current()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	doc, opts, err := s.prepare(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := sink.RenderJSON(m, sink.WithJSONTheme(sink.DefaultTheme().With(opts.Colors)))
	if err != nil {
		s.writeError(w, err)
		return
	}
	setCacheHeader(w, hit)
	writeBytes(w, contentTypes[pipeline.FormatJSON], data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	doc, opts, err := s.prepare(req.documentRequest)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	setCacheHeader(w, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	writeBytes(w, contentTypes[format], result.Artifacts[format])
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := decodeDocument(req.Document)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, err := s.runner.Edit(r.Context(), doc, req.Edits)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var wopts []document.WriteOption
	if req.Locations {
		wopts = append(wopts, document.WithLocations())
	}
	var buf bytes.Buffer
	if err := document.WriteJSON(out, &buf, wopts...); err != nil {
		s.writeError(w, err)
		return
	}
	writeBytes(w, contentTypes[pipeline.FormatJSON], buf.Bytes())
}

func (s *Server) handleNotation(w http.ResponseWriter, r *http.Request) {
	var req notationRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.From == "" {
		req.From = pipeline.NotationText
	}
	if req.To == "" {
		req.To = pipeline.NotationInterchange
	}
	text, err := pipeline.ConvertNotation(req.Text, req.From, req.To)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notationResponse{Text: text})
}

// decode reads a JSON request body into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// prepare decodes the request document and lays the request options over
// the server defaults.
func (s *Server) prepare(req documentRequest) (*document.Document, pipeline.Options, error) {
	doc, err := decodeDocument(req.Document)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	opts := s.defaults
	opts.Colors = maps.Clone(s.defaults.Colors)
	opts.Formats = nil
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			return nil, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options")
		}
	}
	opts.Logger = s.logger
	return doc, opts, nil
}

func decodeDocument(raw json.RawMessage) (*document.Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	return pipeline.Decode(raw, "json")
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	v := "miss"
	if hit {
		v = "hit"
	}
	w.Header().Set("X-Seqmap-Cache", v)
}
