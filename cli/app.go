// Package cli contains the urdfimport command line host: it loads configuration, resolves mesh
// assets next to the URDF document and presents import results.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	importFlagParallel   = "parallel"
	importFlagStrict     = "strict"
	importFlagVisualOnly = "visual-only"
	importFlagTrace      = "trace"

	exportFlagFormat = "format"
	exportFlagOutput = "output"
)

var importFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  importFlagParallel,
		Usage: "decode at most `N` meshes at once",
	},
	&cli.BoolFlag{
		Name:  importFlagStrict,
		Usage: "fail when the import produces any warning",
	},
	&cli.BoolFlag{
		Name:  importFlagVisualOnly,
		Usage: "skip collision meshes",
	},
	&cli.BoolFlag{
		Name:  importFlagTrace,
		Usage: "log import details for this run without lowering the log level",
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "urdfimport",
		Usage:           "import URDF robot descriptions and their STL meshes",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotated by size",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "print the links, joints, meshes and warnings of a URDF file",
				ArgsUsage: "<file.urdf>",
				Flags:     importFlags,
				Action:    InspectAction,
			},
			{
				Name:      "export",
				Usage:     "write the import result as json, yaml or msgpack",
				ArgsUsage: "<file.urdf>",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  exportFlagFormat,
						Value: formatJSON,
						Usage: "output format: json, yaml or msgpack",
					},
					&cli.StringFlag{
						Name:    exportFlagOutput,
						Aliases: []string{"o"},
						Usage:   "write to `FILE` instead of stdout",
					},
				}, importFlags...),
				Action: ExportAction,
			},
			{
				Name:      "watch",
				Usage:     "re-import a URDF file every time it changes",
				ArgsUsage: "<file.urdf>",
				Flags:     importFlags,
				Action:    WatchAction,
			},
		},
	}
}
