// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <files or directories...>",
		Short: "Parse and lower each file, reporting errors and warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.compile(cmd.Context(), args)
			if err != nil {
				return err
			}
			errs, warnings, err := a.render(cmd.ErrOrStderr(), results)
			if err != nil {
				return err
			}
			a.log.Infof("checked %d files: %d errors, %d warnings", len(results), errs, warnings)
			if errs > 0 {
				return fmt.Errorf("check failed with %d errors", errs)
			}
			return nil
		},
	}
}
