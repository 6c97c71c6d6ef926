package applicants

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// CSVStore keeps applicants in a comma-delimited file with a header row.
//
// Every mutation other than Append is a whole-file cycle: read all rows,
// transform in memory, rewrite the file. File handles never outlive a call.
// Unless serialized, concurrent cycles race and the last rewrite wins.
type CSVStore struct {
	path string
	mu   *sync.Mutex
}

// NewCSVStore returns a store backed by the file at path. With serialize set,
// every operation holds one in-process mutex so read-modify-write cycles
// cannot interleave.
func NewCSVStore(path string, serialize bool) *CSVStore {
	s := &CSVStore{path: path}
	if serialize {
		s.mu = &sync.Mutex{}
	}
	return s
}

// Path returns the backing file location.
func (s *CSVStore) Path() string {
	return s.path
}

// Bootstrap creates the file holding only the header row if it is absent.
// A zero-byte file gets the header too; any other existing file is left
// untouched.
func (s *CSVStore) Bootstrap(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock()()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		f, err = os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if info.Size() > 0 {
		return nil
	}
	if err := writeRows(f, nil); err != nil {
		return err
	}
	return f.Close()
}

// List returns every record in file order.
func (s *CSVStore) List(ctx context.Context) ([]Applicant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.lock()()
	return s.readAll()
}

// Append writes one row at the end of the file without reading it first.
// An empty file gets the header row ahead of the record.
func (s *CSVStore) Append(ctx context.Context, a Applicant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock()()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	w := newWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encode(a)); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return f.Close()
}

// FindByEmail returns the first record whose email matches exactly.
func (s *CSVStore) FindByEmail(ctx context.Context, email string) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	defer s.lock()()

	list, err := s.readAll()
	if err != nil {
		return Applicant{}, err
	}
	for _, a := range list {
		if a.Email == email {
			return a, nil
		}
	}
	return Applicant{}, ErrNotFound
}

// UpdateFirst replaces the first record whose email equals originalEmail and
// rewrites the file. Later records sharing that email are left as they are.
// When nothing matches, the unchanged list is rewritten.
func (s *CSVStore) UpdateFirst(ctx context.Context, originalEmail string, a Applicant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock()()

	list, err := s.readAll()
	if err != nil {
		return err
	}
	if i := slices.IndexFunc(list, func(x Applicant) bool { return x.Email == originalEmail }); i >= 0 {
		list[i] = a
	}
	return s.writeAll(list)
}

// DeleteAll removes every record whose email matches and rewrites the file.
// It reports how many rows were removed.
func (s *CSVStore) DeleteAll(ctx context.Context, email string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	defer s.lock()()

	list, err := s.readAll()
	if err != nil {
		return 0, err
	}
	kept := slices.DeleteFunc(slices.Clone(list), func(x Applicant) bool { return x.Email == email })
	if err := s.writeAll(kept); err != nil {
		return 0, err
	}
	return len(list) - len(kept), nil
}

func (s *CSVStore) lock() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *CSVStore) readAll() ([]Applicant, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []Applicant{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedRecord, header)
	}

	out := []Applicant{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

// writeAll replaces the file with header plus list. The rows go to a temp
// file next to the resolved target, which is then renamed over it. A symlinked
// path keeps pointing at the same target and the target keeps its mode.
func (s *CSVStore) writeAll(list []Applicant) error {
	target, err := filepath.EvalSymlinks(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	defer tmp.Close()

	if err := writeRows(tmp, list); err != nil {
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func writeRows(w io.Writer, list []Applicant) error {
	cw := newWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range list {
		if err := cw.Write(encode(a)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// Carriage returns inside values are stored as newlines. The CRLF writer
// would otherwise drop a lone \r.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func encode(a Applicant) []string {
	rec := a.record()
	for i, v := range rec {
		rec[i] = newlines.Replace(v)
	}
	return rec
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}

var _ Store = (*CSVStore)(nil)
