/*
Package cli provides helpers shared by the anchor commands.

Output Formatting:

Commands print either human-readable text or JSON:

	format, err := cli.ParseFormat(flagValue)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)

Values that implement TextRenderer control their own text form.

Progress Reporting:

Batch processing reports progress on stderr:

	progress := cli.NewProgressReporter(cmd.ErrOrStderr())
	progress.Start(int64(len(records)))
	progress.Update(done)
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
