package dotjson

import (
	"bytes"
	"encoding/json"
	"os"
)

// readDocumentFile reads the whole file at path, checking existence first so
// a missing file reports FileNotFound before any parse attempt.
func readDocumentFile(registry, path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NewFileNotFoundError(registry, path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// The file vanished between the stat and the read.
		return nil, NewFileNotFoundError(registry, path, err)
	}
	return data, nil
}

// parseDocument decodes already-read file bytes into a document tree.
func parseDocument(registry, path string, data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewInvalidFormatError(registry, path, err)
	}
	return doc, nil
}

// writeDocumentFile rewrites the whole document to path as pretty-printed
// JSON with a fixed 4-space indent. The write goes to a temporary file first
// and is renamed into place, so a crash mid-write cannot corrupt the file.
func writeDocumentFile(path string, doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
