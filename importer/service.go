package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"bulkunit/unit"
)

// Stage names the phases of one upload invocation. Transitions are
// strictly forward on success; any failure jumps to StageError and
// aborts the remaining stages.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageUploading  Stage = "uploading"
	StageParsing    Stage = "parsing"
	StageValidating Stage = "validating"
	StageSaving     Stage = "saving"
	StageComplete   Stage = "complete"
	StageError      Stage = "error"
)

// Options tunes one pipeline run. Zero values use the production
// defaults.
type Options struct {
	Synonyms       Synonyms
	TypeVocabulary []string
	PriceCeiling   float64
	RowAttribution RowAttribution

	// OnStage, when set, receives each stage transition. The pipeline
	// itself emits uploading, parsing, validating, and error; saving
	// and complete belong to the persistence caller.
	OnStage func(Stage)
}

func (o Options) stage(s Stage) {
	if o.OnStage != nil {
		o.OnStage(s)
	}
}

func (o Options) synonyms() Synonyms {
	if o.Synonyms != nil {
		return o.Synonyms
	}
	return DefaultSynonyms()
}

// Result is the outcome of one pipeline run. Structural row skips
// (DroppedRows) and advisory validation errors (Errors) are separate
// channels: dropped rows never appear in the unit lists and raise no
// error records.
type Result struct {
	Projects []unit.ProjectBatch
	Errors   []unit.ValidationError

	FilesProcessed int
	ProjectCount   int
	TotalUnits     int
	Processed      int
	Skipped        int
	DroppedRows    int
}

// Run executes the pipeline over one or more files: decode each file
// into sheets, split sheets into project batches, normalize rows, then
// validate all batches in one pass.
func Run(paths []string, format string, opts Options) (*Result, error) {
	result := &Result{
		Projects: make([]unit.ProjectBatch, 0, len(paths)),
		Errors:   make([]unit.ValidationError, 0),
	}

	opts.stage(StageUploading)
	type payload struct {
		data   []byte
		path   string
		format string
	}
	payloads := make([]payload, 0, len(paths))
	for _, path := range paths {
		resolved, err := InferFormat(path, format)
		if err != nil {
			opts.stage(StageError)
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			opts.stage(StageError)
			return nil, fmt.Errorf("read input file %s: %w", path, err)
		}
		payloads = append(payloads, payload{data: data, path: path, format: resolved})
	}

	opts.stage(StageParsing)
	for _, p := range payloads {
		if err := parsePayload(result, bytes.NewReader(p.data), p.path, p.format, opts); err != nil {
			opts.stage(StageError)
			return nil, err
		}
	}

	finishRun(result, opts)
	return result, nil
}

// RunReader executes the pipeline over one fully buffered payload,
// e.g. an HTTP upload. The filename supplies the implicit sheet label
// for delimited text and the extension for format inference.
func RunReader(r io.Reader, filename, format string, opts Options) (*Result, error) {
	opts.stage(StageUploading)
	resolved, err := InferFormat(filename, format)
	if err != nil {
		opts.stage(StageError)
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		opts.stage(StageError)
		return nil, fmt.Errorf("read upload %s: %w", filename, err)
	}

	result := &Result{
		Projects: make([]unit.ProjectBatch, 0, 1),
		Errors:   make([]unit.ValidationError, 0),
	}

	opts.stage(StageParsing)
	if err := parsePayload(result, bytes.NewReader(data), filename, resolved, opts); err != nil {
		opts.stage(StageError)
		return nil, err
	}

	finishRun(result, opts)
	return result, nil
}

func parsePayload(result *Result, r io.Reader, filename, format string, opts Options) error {
	reader, err := ReaderForFormat(format, filename)
	if err != nil {
		return err
	}

	sheets, err := reader.Read(r)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}

	result.FilesProcessed++
	synonyms := opts.synonyms()
	for _, sheet := range sheets {
		batch, dropped, ok := BatchFromSheet(sheet, synonyms, filename)
		result.DroppedRows += dropped
		if !ok {
			continue
		}
		result.Projects = append(result.Projects, batch)
		result.TotalUnits += len(batch.Units)
	}
	return nil
}

func finishRun(result *Result, opts Options) {
	opts.stage(StageValidating)
	result.Errors = Validate(result.Projects, ValidateOptions{
		TypeVocabulary: opts.TypeVocabulary,
		PriceCeiling:   opts.PriceCeiling,
		RowAttribution: opts.RowAttribution,
	})

	result.ProjectCount = len(result.Projects)
	result.Skipped = len(result.Errors)
	result.Processed = result.TotalUnits - len(result.Errors)
}
