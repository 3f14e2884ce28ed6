package app

import (
	"context"
	"fmt"
	"io"

	"github.com/oakbranch/pymap/domain"
	svc "github.com/oakbranch/pymap/service"
)

// ResolveUseCase orchestrates a single entry file's import-graph resolution.
type ResolveUseCase struct {
	service    domain.ResolveService
	fileReader domain.FileReader
	formatter  domain.GraphFormatter
	output     domain.ReportWriter
}

// NewResolveUseCase creates a new ResolveUseCase.
func NewResolveUseCase(service domain.ResolveService, fileReader domain.FileReader, formatter domain.GraphFormatter) *ResolveUseCase {
	return &ResolveUseCase{
		service:    service,
		fileReader: fileReader,
		formatter:  formatter,
		output:     svc.NewFileOutputWriter(nil),
	}
}

// Execute resolves req.EntryPath and writes the formatted result.
func (uc *ResolveUseCase) Execute(ctx context.Context, req domain.ResolveRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	response, err := uc.service.Resolve(ctx, req)
	if err != nil {
		return err
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (uc *ResolveUseCase) validateRequest(req domain.ResolveRequest) error {
	if req.EntryPath == "" {
		return fmt.Errorf("no entry path specified")
	}
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// ResolveUseCaseBuilder provides a fluent builder for ResolveUseCase.
type ResolveUseCaseBuilder struct {
	service    domain.ResolveService
	fileReader domain.FileReader
	formatter  domain.GraphFormatter
	output     domain.ReportWriter
}

func NewResolveUseCaseBuilder() *ResolveUseCaseBuilder { return &ResolveUseCaseBuilder{} }

func (b *ResolveUseCaseBuilder) WithService(s domain.ResolveService) *ResolveUseCaseBuilder {
	b.service = s
	return b
}
func (b *ResolveUseCaseBuilder) WithFileReader(fr domain.FileReader) *ResolveUseCaseBuilder {
	b.fileReader = fr
	return b
}
func (b *ResolveUseCaseBuilder) WithFormatter(f domain.GraphFormatter) *ResolveUseCaseBuilder {
	b.formatter = f
	return b
}
func (b *ResolveUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *ResolveUseCaseBuilder {
	b.output = w
	return b
}

func (b *ResolveUseCaseBuilder) Build() (*ResolveUseCase, error) {
	if b.service == nil || b.fileReader == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &ResolveUseCase{
		service:    b.service,
		fileReader: b.fileReader,
		formatter:  b.formatter,
		output:     b.output,
	}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
