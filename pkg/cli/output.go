// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/motolab/tuner/pkg/client"
	"github.com/motolab/tuner/pkg/header"
	"github.com/motolab/tuner/pkg/motorcycle"
	"github.com/motolab/tuner/pkg/serializer"
)

// BuildReport is the document printed by the report and simulate commands.
type BuildReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Reports []*motorcycle.Report `json:"reports" yaml:"reports"`
}

func newBuildReport(reports ...*motorcycle.Report) *BuildReport {
	doc := &BuildReport{Reports: reports}
	doc.Init(header.KindBuildReport, header.APIVersion, version)
	return doc
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String(flagFormat))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// writeOutput serializes v to --output (stdout when empty) in --format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) (err error) {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w := serializer.NewFileWriterOrStdout(f, cmd.String(flagOutput))
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	return w.Serialize(ctx, v)
}

func newClient(cmd *cli.Command) *client.Client {
	return client.New(cmd.String(flagServer),
		client.WithUserAgent(fmt.Sprintf("%s/%s", name, version)))
}

// requireArgs returns the first n positional arguments or an error naming the missing ones.
func requireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	if cmd.NArg() < len(names) {
		return nil, fmt.Errorf("missing argument <%s>", names[cmd.NArg()])
	}
	out := make([]string, len(names))
	for i := range names {
		out[i] = cmd.Args().Get(i)
	}
	return out, nil
}
