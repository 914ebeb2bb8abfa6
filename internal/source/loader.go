// Package source turns document references given on the command line
// (files, URLs, stdin, stored snapshots) into parsed JSON values.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/httpclient"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/rs/zerolog"
)

// Fetcher downloads a URL. *httpclient.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*httpclient.Document, error)
}

// SnapshotReader looks up stored snapshots. models.SnapshotStore implements it.
type SnapshotReader interface {
	Latest(name string) (*models.Snapshot, error)
}

// Document is a loaded reference together with its raw bytes.
type Document struct {
	Ref   string
	Kind  RefKind
	Value jsonvalue.Value
	Raw   []byte
}

// Loader resolves document references.
type Loader struct {
	logger    zerolog.Logger
	fetcher   Fetcher
	snapshots SnapshotReader
	stdin     io.Reader
	maxSize   int64
}

// LoaderBuilder provides a fluent interface for creating a Loader
type LoaderBuilder struct {
	loader Loader
}

// NewLoaderBuilder creates a builder reading stdin from os.Stdin with the
// default file size limit.
func NewLoaderBuilder(logger zerolog.Logger) *LoaderBuilder {
	logger = logger.With().Str("component", "SourceLoader").Logger()
	return &LoaderBuilder{
		loader: Loader{
			logger:  logger,
			stdin:   os.Stdin,
			maxSize: common.DefaultMaxFileSize,
		},
	}
}

// WithFetcher enables URL references
func (b *LoaderBuilder) WithFetcher(f Fetcher) *LoaderBuilder {
	b.loader.fetcher = f
	return b
}

// WithSnapshots enables snapshot references
func (b *LoaderBuilder) WithSnapshots(s SnapshotReader) *LoaderBuilder {
	b.loader.snapshots = s
	return b
}

// WithStdin replaces the reader used for "-"
func (b *LoaderBuilder) WithStdin(r io.Reader) *LoaderBuilder {
	b.loader.stdin = r
	return b
}

// WithMaxSize limits file and stdin input; 0 disables the limit
func (b *LoaderBuilder) WithMaxSize(bytes int64) *LoaderBuilder {
	b.loader.maxSize = bytes
	return b
}

// Build returns the configured Loader
func (b *LoaderBuilder) Build() *Loader {
	l := b.loader
	return &l
}

// Load resolves ref and parses it.
func (l *Loader) Load(ctx context.Context, ref string) (jsonvalue.Value, error) {
	doc, err := l.LoadDocument(ctx, "", ref)
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

// LoadDocument resolves ref for the given side ("" outside comparisons).
// Unparseable content is reported as *models.InvalidJSONInputError; failures
// to obtain the bytes are returned as they are.
func (l *Loader) LoadDocument(ctx context.Context, side, ref string) (*Document, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, common.NewValidationError("ref", ref, "document reference cannot be empty")
	}

	kind := KindOf(ref)
	raw, yaml, err := l.read(ctx, kind, ref)
	if err != nil {
		return nil, err
	}

	parse := jsonvalue.Parse
	if yaml {
		parse = jsonvalue.ParseYAML
	}
	v, err := parse(raw)
	if err != nil {
		return nil, &models.InvalidJSONInputError{Side: side, Source: ref, Err: err}
	}

	l.logger.Debug().
		Str("ref", ref).
		Str("kind", kind.String()).
		Str("side", side).
		Int("bytes", len(raw)).
		Msg("Loaded document")

	return &Document{Ref: ref, Kind: kind, Value: v, Raw: raw}, nil
}

func (l *Loader) read(ctx context.Context, kind RefKind, ref string) ([]byte, bool, error) {
	switch kind {
	case RefStdin:
		if l.stdin == nil {
			return nil, false, common.NewValidationError("ref", ref, "standard input is not available")
		}
		raw, err := common.ReadLimited(ctx, l.stdin, l.maxSize)
		if err != nil {
			return nil, false, common.WrapError(err, "failed to read standard input")
		}
		return raw, false, nil

	case RefURL:
		if l.fetcher == nil {
			return nil, false, common.NewValidationError("ref", ref, "URL sources are not enabled")
		}
		doc, err := l.fetcher.Fetch(ctx, ref)
		if err != nil {
			return nil, false, common.WrapErrorf(err, "failed to fetch %s", ref)
		}
		return doc.Body, isYAMLContentType(doc.ContentType) || isYAMLPath(ref), nil

	case RefSnapshot:
		if l.snapshots == nil {
			return nil, false, common.NewValidationError("ref", ref, "snapshot sources are not enabled")
		}
		name := SnapshotName(ref)
		if name == "" {
			return nil, false, common.NewValidationError("ref", ref, "snapshot name cannot be empty")
		}
		snap, err := l.snapshots.Latest(name)
		if err != nil {
			return nil, false, common.WrapErrorf(err, "failed to load snapshot %q", name)
		}
		return []byte(snap.Body), false, nil

	default:
		raw, err := common.ReadFile(ctx, ref, l.maxSize)
		if err != nil {
			return nil, false, err
		}
		return raw, isYAMLPath(ref), nil
	}
}

// PairError reports the failures of one or both sides of a comparison.
type PairError struct {
	Left  error
	Right error
}

// Error returns both messages when both sides failed.
func (e *PairError) Error() string {
	switch {
	case e.Left != nil && e.Right != nil:
		return fmt.Sprintf("%v; %v", e.Left, e.Right)
	case e.Left != nil:
		return e.Left.Error()
	default:
		return e.Right.Error()
	}
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *PairError) Unwrap() []error {
	var errs []error
	if e.Left != nil {
		errs = append(errs, e.Left)
	}
	if e.Right != nil {
		errs = append(errs, e.Right)
	}
	return errs
}

// LoadPair loads both sides of a comparison. Each side is attempted even
// when the other fails so both problems are reported at once.
func (l *Loader) LoadPair(ctx context.Context, leftRef, rightRef string) (*Document, *Document, error) {
	if leftRef == StdinRef && rightRef == StdinRef {
		return nil, nil, common.NewValidationError("ref", StdinRef, "standard input can only be used for one side")
	}

	left, leftErr := l.LoadDocument(ctx, models.SideLeft, leftRef)
	right, rightErr := l.LoadDocument(ctx, models.SideRight, rightRef)
	if leftErr != nil || rightErr != nil {
		return nil, nil, &PairError{Left: leftErr, Right: rightErr}
	}
	return left, right, nil
}

// IsNotFound reports whether err means the referenced document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist) || errors.Is(err, common.ErrNotFound)
}
