package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
)

// Converter turns replay files into raw match payloads.
type Converter interface {
	Convert(ctx context.Context, replay io.Reader) (*match.RawMatch, error)
}

type converter struct {
	binary string
}

// New creates a Converter that shells out to the dem2json binary at path.
func New(path string) Converter {
	return &converter{binary: path}
}

type envelope struct {
	Result *match.RawMatch `json:"result"`
}

// Convert spools the replay to a temporary file and runs dem2json on it.
func (c *converter) Convert(ctx context.Context, replay io.Reader) (*match.RawMatch, error) {
	tmp, err := os.CreateTemp("", "replay-*.dem")
	if err != nil {
		return nil, fmt.Errorf("failed to create replay file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, replay); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write replay file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, tmp.Name())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Error("dem2json failed", "error", err, "stderr", stderr.String())
		return nil, fmt.Errorf("%w: replay conversion failed: %v", apperrors.ErrInvalidMatch, err)
	}
	return ParseResult(stdout.Bytes())
}

// ParseResult decodes converter output of the form {"result": {...}}.
func ParseResult(data []byte) (*match.RawMatch, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidMatch, err)
	}
	if env.Result == nil {
		return nil, fmt.Errorf("%w: missing result", apperrors.ErrInvalidMatch)
	}
	return env.Result, nil
}

// ParsePayload accepts either the converter envelope or a bare match object.
func ParsePayload(data []byte) (*match.RawMatch, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidMatch, err)
	}
	if _, ok := probe["result"]; ok {
		return ParseResult(data)
	}
	var raw match.RawMatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidMatch, err)
	}
	return &raw, nil
}
