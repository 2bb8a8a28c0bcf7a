/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"github.com/spf13/cobra"

	"photogrid/internal/ui"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [image...]",
		Short: "Launch the desktop UI",
		Long: `UI opens the desktop window (binary must be built with -tags fyne).
Any image paths given are added to the session on startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(args)
		},
	}
}
