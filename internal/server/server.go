// Package server exposes the rewrite commands to host editors over a
// JSON-lines protocol, typically on stdin and stdout.
//
// Each request line carries a command, the document text, its language and
// the selections; the response line carries the edit batch expressed
// against that text, the selections after the batch and an optional
// clipboard write. The server keeps no document state between requests,
// so the host stays the owner of its buffers.
//
//	{"id":"1","command":"comment.toggle","language":"go","text":"x := 1\n"}
//	{"id":"1","status":"ok","edits":[{"range":{...},"text":"// x := 1"}],...}
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/wonderland/internal/app"
	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/log"
)

// Request errors.
var (
	// ErrInvalidRequest indicates a line that is not a request object.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMissingCommand indicates a request without a command.
	ErrMissingCommand = errors.New("missing command")

	// ErrBadColumns indicates an unknown column unit.
	ErrBadColumns = errors.New("unknown column unit")
)

// Server answers requests read from a Transport.
type Server struct {
	app       *app.App
	transport Transport
	logger    log.Logger
}

// New creates a server executing commands on a.
func New(a *app.App, t Transport) *Server {
	return &Server{
		app:       a,
		transport: t,
		logger:    log.For(log.CatServer),
	}
}

type received struct {
	data []byte
	err  error
}

// Serve handles requests until the input ends or ctx is cancelled.
// Requests are answered in order. Settings reloads made by the
// application between requests apply to the next request.
func (s *Server) Serve(ctx context.Context) error {
	lines := make(chan received)
	go func() {
		defer close(lines)
		for {
			data, err := s.transport.Receive()
			select {
			case lines <- received{data: data, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				return
			}
		}
	}()

	s.logger.Info("serving")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopped", "reason", ctx.Err())
			return nil
		case r, ok := <-lines:
			if !ok {
				return nil
			}
			if r.err != nil {
				if errors.Is(r.err, io.EOF) {
					s.logger.Info("input closed")
					return nil
				}
				if !errors.Is(r.err, ErrLineTooLong) {
					return fmt.Errorf("read request: %w", r.err)
				}
				if err := s.transport.Send(errorResponse("", r.err)); err != nil {
					return err
				}
				continue
			}
			if err := s.transport.Send(s.HandleLine(ctx, r.data)); err != nil {
				return err
			}
		}
	}
}

// HandleLine decodes and answers one request line.
func (s *Server) HandleLine(ctx context.Context, line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("bad request line", "error", err)
		return errorResponse("", fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}
	return s.Handle(ctx, req)
}

// Handle executes one request.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp := s.handle(ctx, req)
	s.logger.Debug("request",
		"id", resp.ID,
		"command", req.Command,
		"status", resp.Status,
		"edits", len(resp.Edits),
		"duration", time.Since(start),
	)
	return resp
}

func (s *Server) handle(ctx context.Context, req Request) Response {
	if req.Command == "" {
		return errorResponse(req.ID, ErrMissingCommand)
	}
	cols, err := parseColumns(req.Columns)
	if err != nil {
		return errorResponse(req.ID, err)
	}

	doc := app.NewDocument(req.Path, req.Text, req.Language)
	before := doc.Snapshot()
	if len(req.Selections) > 0 {
		doc.SetSelections(cols.toSelections(before, req.Selections)...)
	}

	var opts []app.ExecOption
	if req.Clipboard != nil {
		opts = append(opts, app.UsingClipboard(clipboard.NewMemory(*req.Clipboard)))
	}

	out, err := s.app.Execute(ctx, doc, req.Command, opts...)
	resp := Response{
		ID:      req.ID,
		Status:  out.Result.Status.String(),
		Message: out.Result.Message,
	}
	if err != nil {
		if out.Result.Status != handler.StatusCancelled {
			resp.Status = handler.StatusError.String()
		}
		resp.Error = err.Error()
		return resp
	}

	resp.Edits = cols.fromEdits(before, out.Applied.Edits)
	resp.Selections = cols.fromSelections(doc.Snapshot(), out.Selections)
	resp.Clipboard = out.Clipboard
	return resp
}

func parseColumns(unit string) (columns, error) {
	switch unit {
	case "", ColumnsByte:
		return columns{}, nil
	case ColumnsChar:
		return columns{chars: true}, nil
	default:
		return columns{}, fmt.Errorf("%w: %q", ErrBadColumns, unit)
	}
}

func errorResponse(id string, err error) Response {
	if id == "" {
		id = uuid.NewString()
	}
	return Response{
		ID:     id,
		Status: handler.StatusError.String(),
		Error:  err.Error(),
	}
}
