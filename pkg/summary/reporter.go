// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package summary

import (
	"io"
	"os"

	"github.com/cicd-ai-toolkit/xcode-summary/pkg/annotation"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/errors"
	"github.com/cicd-ai-toolkit/xcode-summary/pkg/observability"
)

// Reporter reads a summary file, classifies it and posts the result to a sink.
type Reporter struct {
	classifier *Classifier
	sink       annotation.Sink
	log        observability.Logger
}

// NewReporter creates a reporter. A nil logger discards log output.
func NewReporter(classifier *Classifier, sink annotation.Sink, log observability.Logger) *Reporter {
	if log == nil {
		log = observability.NewNop()
	}
	return &Reporter{classifier: classifier, sink: sink, log: log}
}

// Report processes the summary file at path. It fails with a
// KindReportNotFound error when path is not a regular file and with
// KindReportMalformed when the file is not a valid summary.
func (r *Reporter) Report(path string) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Summary{}, errors.ReportNotFound(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Summary{}, errors.New(errors.KindReportNotFound, "summary file not readable", err).
			WithContext("path", path)
	}
	defer f.Close()

	return r.ReportReader(path, f)
}

// ReportReader runs the pipeline on an already opened summary; name is used
// in errors and logs only.
func (r *Reporter) ReportReader(name string, in io.Reader) (Summary, error) {
	report, err := Parse(in)
	if err != nil {
		return Summary{}, errors.ReportMalformed(name, err)
	}

	s := r.classifier.Classify(report)
	r.log.Debug("summary classified",
		observability.String("file", name),
		observability.Int("messages", len(s.Messages)),
		observability.Int("warnings", len(s.Warnings)),
		observability.Int("errors", len(s.Errors)),
	)

	for _, m := range s.Messages {
		r.sink.PostInfo(m, true)
	}
	for _, w := range s.Warnings {
		r.sink.PostWarning(w, false)
	}
	for _, e := range s.Errors {
		r.sink.PostFailure(e, false)
	}
	return s, nil
}
