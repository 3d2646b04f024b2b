package protocol

import (
	"encoding/json"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/logging"
	"github.com/wrrulos/dotjson/internal/version"
)

// Handler dispatches parsed protocol requests against a registry pair. It is
// transport-agnostic: the WebSocket server feeds it raw frames and writes
// back whatever it returns, which keeps the whole protocol testable without
// a network.
type Handler struct {
	configs   *dotjson.ConfigRegistry
	languages *dotjson.LanguageRegistry
}

// NewHandler creates a handler serving the given registries.
func NewHandler(configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) *Handler {
	return &Handler{configs: configs, languages: languages}
}

// Handle processes one incoming frame and returns the encoded response.
// Every frame gets exactly one response; parse and dispatch failures come
// back as error responses rather than dropped messages.
func (h *Handler) Handle(remoteAddr string, data []byte) []byte {
	req, err := ParseRequest(data)
	if err != nil {
		logging.LogOperationResult(remoteAddr, "parse", "error")
		return encodeOrFallback(&Response{Error: classifyError(err)})
	}

	logging.LogOperation(remoteAddr, req.Op, req.Target())

	resp := h.dispatch(req)

	status := "ok"
	if !resp.OK {
		status = "error"
	}
	logging.LogOperationResult(remoteAddr, req.Op, status)

	return encodeOrFallback(resp)
}

func (h *Handler) dispatch(req *Request) *Response {
	switch req.Op {
	case OpPing:
		return h.handlePing(req)
	case OpList:
		return h.handleList(req)
	case OpGetValue:
		return h.handleGetValue(req)
	case OpSetValue:
		return h.handleSetValue(req)
	case OpTranslate:
		return h.handleTranslate(req)
	case OpGetDocument:
		return h.handleGetDocument(req)
	default:
		// ParseRequest rejects unknown ops; this is unreachable for frames
		// that came through Handle.
		return NewErrorResponse(req, invalidArgument("unknown operation %q", req.Op))
	}
}

// handlePing answers with the daemon identity so clients can verify version
// compatibility.
func (h *Handler) handlePing(req *Request) *Response {
	resp, err := NewValueResponse(req, version.UserAgent())
	if err != nil {
		return NewErrorResponse(req, err)
	}
	return resp
}

// Inventory reports the current contents of both registries. The list
// operation serves it over the wire and the daemon's read-only HTTP
// endpoint mirrors it.
func (h *Handler) Inventory() *ListResult {
	list := &ListResult{
		Configs:   make([]ListEntry, 0),
		Languages: make([]ListEntry, 0),
	}

	for _, name := range h.configs.Names() {
		entry := ListEntry{Name: name}
		if path, err := h.configs.Path(name); err == nil {
			entry.Path = path
		}
		list.Configs = append(list.Configs, entry)
	}

	for _, name := range h.languages.Names() {
		list.Languages = append(list.Languages, ListEntry{Name: name})
	}

	if active, ok := h.languages.Active(); ok {
		list.ActiveLanguage = active
	}

	return list
}

func (h *Handler) handleList(req *Request) *Response {
	return NewListResponse(req, h.Inventory())
}

func (h *Handler) handleGetValue(req *Request) *Response {
	value, err := h.configs.Value(req.Key, req.Name)
	if err != nil {
		return NewErrorResponse(req, err)
	}

	resp, err := NewValueResponse(req, value)
	if err != nil {
		return NewErrorResponse(req, err)
	}
	return resp
}

func (h *Handler) handleSetValue(req *Request) *Response {
	// Validation guaranteed the raw value parses.
	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		return NewErrorResponse(req, invalidFormat("%s value is not valid JSON", req.Op))
	}

	if err := h.configs.SetValue(req.Key, value, req.Name); err != nil {
		return NewErrorResponse(req, err)
	}

	if path, err := h.configs.Path(req.Name); err == nil {
		logging.LogDocumentWrite(path)
	}
	return NewOKResponse(req)
}

func (h *Handler) handleTranslate(req *Request) *Response {
	var (
		text string
		err  error
	)
	if req.Lang != "" {
		text, err = h.languages.TranslateWith(req.Lang, req.Key)
	} else {
		text, err = h.languages.Translate(req.Key)
	}
	if err != nil {
		return NewErrorResponse(req, err)
	}

	resp, err := NewValueResponse(req, text)
	if err != nil {
		return NewErrorResponse(req, err)
	}
	return resp
}

func (h *Handler) handleGetDocument(req *Request) *Response {
	var (
		doc any
		err error
	)
	switch req.Registry {
	case dotjson.KindConfiguration:
		doc, err = h.configs.Document(req.Name)
	case dotjson.KindLanguage:
		doc, err = h.languages.Document(req.Name)
	}
	if err != nil {
		return NewErrorResponse(req, err)
	}

	resp, err := NewValueResponse(req, doc)
	if err != nil {
		return NewErrorResponse(req, err)
	}
	return resp
}

// encodeOrFallback serializes a response, degrading to a minimal hand-built
// frame if the response itself cannot be encoded.
func encodeOrFallback(resp *Response) []byte {
	data, err := EncodeResponse(resp)
	if err != nil {
		return []byte(`{"id":0,"op":"","ok":false,"error":{"code":"internal","message":"failed to encode response"}}`)
	}
	return data
}
