package qwalk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects how records are written.
type Format string

const (
	// FormatText writes one "n: <checkpoint> s: <entropy>" line per checkpoint.
	FormatText Format = "text"
	// FormatMsgpack writes every Record as one msgpack map.
	FormatMsgpack Format = "msgpack"
)

// Record is the result of sampling one checkpoint. Norm is a diagnostic: the
// walls fold probability together, so it drifts away from 1 over a long run.
type Record struct {
	RunID      string  `msgpack:"run_id"`
	Checkpoint int     `msgpack:"checkpoint"`
	TotalSteps int     `msgpack:"total_steps"`
	Entropy    float64 `msgpack:"entropy"`
	Support    int     `msgpack:"support"`
	Norm       float64 `msgpack:"norm"`
}

// Recorder is the append-only output sink of a simulation.
type Recorder interface {
	Record(rec Record) error
	Close() error
}

type TextRecorder struct {
	w io.Writer
}

func NewTextRecorder(w io.Writer) *TextRecorder {
	return &TextRecorder{w: w}
}

func (r *TextRecorder) Record(rec Record) error {
	_, err := fmt.Fprintf(r.w, "n: %d s: %s\n", rec.Checkpoint, strconv.FormatFloat(rec.Entropy, 'f', -1, 64))
	return errors.Wrap(err, "writing record")
}

func (r *TextRecorder) Close() error {
	return closeWriter(r.w)
}

type MsgpackRecorder struct {
	w   io.Writer
	enc *msgpack.Encoder
}

func NewMsgpackRecorder(w io.Writer) *MsgpackRecorder {
	return &MsgpackRecorder{w: w, enc: msgpack.NewEncoder(w)}
}

func (r *MsgpackRecorder) Record(rec Record) error {
	return errors.Wrap(r.enc.Encode(rec), "encoding record")
}

func (r *MsgpackRecorder) Close() error {
	return closeWriter(r.w)
}

// NewRecorder wraps w in the recorder for format.
func NewRecorder(w io.Writer, format Format) (Recorder, error) {
	if w == nil {
		return nil, ErrNoRecorder
	}

	switch format {
	case FormatText, "":
		return NewTextRecorder(w), nil
	case FormatMsgpack:
		return NewMsgpackRecorder(w), nil
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unknown output format %q", format)
	}
}

/*
FileRecorder writes into a temporary file next to its destination. Commit moves
the finished file into place; Close without Commit removes it, so an aborted run
leaves the destination as it was.
*/
type FileRecorder struct {
	Recorder
	tmp    string
	path   string
	closed bool
}

// OpenRecorder prepares a FileRecorder for path. An unusable destination fails
// here, before any step is taken.
func OpenRecorder(path string, format Format) (*FileRecorder, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, errors.Wrapf(ErrNoRecorder, "opening %s: %v", path, err)
	}

	rec, err := NewRecorder(f, format)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}

	return &FileRecorder{Recorder: rec, tmp: f.Name(), path: path}, nil
}

// Commit closes the temporary file and renames it onto the destination.
func (r *FileRecorder) Commit() error {
	if r.closed {
		return errors.Wrapf(ErrNoRecorder, "%s already closed", r.path)
	}

	r.closed = true

	if err := r.Recorder.Close(); err != nil {
		os.Remove(r.tmp)
		return errors.Wrapf(err, "closing %s", r.tmp)
	}

	if err := os.Chmod(r.tmp, 0644); err != nil {
		os.Remove(r.tmp)
		return errors.Wrapf(err, "publishing %s", r.path)
	}

	if err := os.Rename(r.tmp, r.path); err != nil {
		os.Remove(r.tmp)
		return errors.Wrapf(err, "publishing %s", r.path)
	}

	return nil
}

// Close discards the output unless Commit already published it.
func (r *FileRecorder) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	err := r.Recorder.Close()

	if rmErr := os.Remove(r.tmp); rmErr != nil && err == nil {
		err = rmErr
	}

	return errors.Wrapf(err, "discarding %s", r.tmp)
}

func closeWriter(w io.Writer) error {
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
