package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/sdfmjcf/config"
	"go.viam.com/sdfmjcf/convert"
	"go.viam.com/sdfmjcf/convert/mjcftosdf"
	"go.viam.com/sdfmjcf/convert/sdftomjcf"
	"go.viam.com/sdfmjcf/logging"
	"go.viam.com/sdfmjcf/mjcf"
	"go.viam.com/sdfmjcf/sdf"
)

// settings loads the config file and environment, then applies the flags that were set on top of them.
func settings(c *cli.Context) (config.Options, error) {
	opts, err := config.Load(c.String(flagConfig))
	if err != nil {
		return config.Options{}, err
	}
	if c.IsSet(flagStrict) {
		opts.Strict = c.Bool(flagStrict)
	}
	if c.IsSet(flagModelName) {
		opts.ModelName = c.String(flagModelName)
	}
	if c.IsSet(flagAngleUnit) {
		opts.AngleUnit = c.String(flagAngleUnit)
	}
	if c.Bool(flagNoWorldPlugins) {
		opts.ExportWorldPlugins = false
	}
	if c.Bool(flagDebug) {
		opts.LogLevel = "debug"
	}
	if c.IsSet(flagLogFile) {
		opts.LogFile = c.String(flagLogFile)
	}
	if err := opts.Validate(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}

// conversion is the state shared by the conversion commands.
type conversion struct {
	c       *cli.Context
	opts    config.Options
	logger  logging.Logger
	session *convert.Session
	closer  io.Closer
}

func newConversion(c *cli.Context) (*conversion, error) {
	if c.Args().Len() != 1 {
		return nil, errors.Errorf("expected exactly one input file, got %d arguments", c.Args().Len())
	}
	opts, err := settings(c)
	if err != nil {
		return nil, err
	}

	logger := logging.NewBlankLogger("sdfmjcf")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	config.InitLoggingSettings(logger, c.Bool(flagDebug))
	closer := opts.ApplyLogging(logger)
	logger.Debugw("settings loaded", "angle_unit", opts.AngleUnit, "strict", opts.Strict)

	return &conversion{
		c:       c,
		opts:    opts,
		logger:  logger,
		session: convert.NewSession(logger.Sublogger(c.Command.Name)),
		closer:  closer,
	}, nil
}

func (cv *conversion) input() string {
	return cv.c.Args().First()
}

// finish writes the converted document and the summary, and closes the log file. In strict mode a conversion
// that skipped elements fails without writing the document.
func (cv *conversion) finish(document []byte) (err error) {
	defer func() {
		err = multierr.Combine(err, cv.logger.Sync(), cv.closer.Close())
	}()

	if cv.c.Bool(flagSummary) {
		printSummary(cv.c.App.ErrWriter, cv.session)
	}
	if sessionErr := cv.session.Err(); sessionErr != nil && cv.opts.Strict {
		return errors.Wrapf(sessionErr, "%d elements of %q could not be converted", len(cv.session.Errors()), cv.input())
	}

	output := cv.c.String(flagOutput)
	if output == "" || output == stdoutPath {
		_, err := cv.c.App.Writer.Write(document)
		return err
	}
	if err := os.WriteFile(output, document, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %q", output)
	}
	cv.logger.Infof("wrote %s", output)
	return nil
}

// SDFToMJCFAction is the corresponding action for 'sdf2mjcf'.
func SDFToMJCFAction(c *cli.Context) error {
	cv, err := newConversion(c)
	if err != nil {
		return err
	}
	root, err := sdf.ParseFile(cv.input())
	if err != nil {
		return multierr.Combine(err, cv.closer.Close())
	}
	doc, err := sdftomjcf.Convert(root, sdftomjcf.Config{
		ModelName: cv.opts.ModelName,
		AngleUnit: cv.opts.Unit(),
		SourceDir: filepath.Dir(cv.input()),
	}, cv.session)
	if err != nil {
		return multierr.Combine(err, cv.closer.Close())
	}
	out, err := mjcf.Marshal(doc)
	if err != nil {
		return multierr.Combine(err, cv.closer.Close())
	}
	return cv.finish(out)
}

// MJCFToSDFAction is the corresponding action for 'mjcf2sdf'.
func MJCFToSDFAction(c *cli.Context) error {
	cv, err := newConversion(c)
	if err != nil {
		return err
	}
	doc, err := mjcf.ParseFile(cv.input())
	if err != nil {
		return multierr.Combine(err, cv.closer.Close())
	}
	root, err := mjcftosdf.Convert(doc, mjcftosdf.Config{
		ModelName:          cv.opts.ModelName,
		ExportWorldPlugins: cv.opts.ExportWorldPlugins,
	}, cv.session)
	if err != nil {
		return multierr.Combine(err, cv.closer.Close())
	}
	out, err := sdf.Marshal(root)
	if err != nil {
		return multierr.Combine(err, cv.closer.Close())
	}
	return cv.finish(out)
}

// ConfigAction is the corresponding action for 'config'.
func ConfigAction(c *cli.Context) error {
	opts, err := settings(c)
	if err != nil {
		return err
	}
	out, err := opts.YAML()
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(out)
	return err
}

// printSummary writes a table of the warnings and per-element errors of a conversion.
func printSummary(w io.Writer, session *convert.Session) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Kind", "Message"})
	row := 1
	for _, warning := range session.Warnings() {
		t.AppendRow(table.Row{row, "warning", warning})
		row++
	}
	for _, err := range session.Errors() {
		t.AppendRow(table.Row{row, "skipped", err.Error()})
		row++
	}
	t.AppendFooter(table.Row{"", "total", fmt.Sprintf("%d warnings, %d skipped", len(session.Warnings()), len(session.Errors()))})
	fmt.Fprintln(w, t.Render())
}
