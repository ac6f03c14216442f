// Package cli contains the sdfmjcf command line tool, which converts robot models between SDFormat and MJCF.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// Flags.
const (
	flagConfig         = "config"
	flagDebug          = "debug"
	flagLogFile        = "log-file"
	flagStrict         = "strict"
	flagSummary        = "summary"
	flagOutput         = "output"
	flagModelName      = "model-name"
	flagAngleUnit      = "angle-unit"
	flagNoWorldPlugins = "no-world-plugins"
	stdoutPath         = "-"
)

func newApp() *cli.App {
	return &cli.App{
		Name:            "sdfmjcf",
		Usage:           "convert robot models between SDFormat and MJCF",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load settings from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated by size",
			},
			&cli.BoolFlag{
				Name:  flagStrict,
				Usage: "fail when any element could not be converted",
			},
			&cli.BoolFlag{
				Name:  flagSummary,
				Usage: "print a table of the warnings and skipped elements of the conversion",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sdf2mjcf",
				Usage:     "convert an SDFormat file to MJCF",
				ArgsUsage: "<input.sdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the MJCF document to `FILE` instead of stdout",
						Value:   stdoutPath,
					},
					&cli.StringFlag{
						Name:  flagModelName,
						Usage: "name of the MJCF model",
					},
					&cli.StringFlag{
						Name:  flagAngleUnit,
						Usage: "unit of the angles in the MJCF document, degree or radian",
					},
				},
				Action: SDFToMJCFAction,
			},
			{
				Name:      "mjcf2sdf",
				Usage:     "convert an MJCF file to SDFormat",
				ArgsUsage: "<input.xml>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the SDFormat document to `FILE` instead of stdout",
						Value:   stdoutPath,
					},
					&cli.StringFlag{
						Name:  flagModelName,
						Usage: "name of the SDFormat model",
					},
					&cli.BoolFlag{
						Name:  flagNoWorldPlugins,
						Usage: "do not add the Gazebo system plugins to worlds with camera sensors",
					},
				},
				Action: MJCFToSDFAction,
			},
			{
				Name:   "config",
				Usage:  "print the effective settings as YAML",
				Action: ConfigAction,
			},
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut. Converted documents go to out and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
