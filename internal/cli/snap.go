package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/geom"
	"github.com/matzehuels/canvasnap/pkg/scene"
)

// newSessionArg starts a session instead of resuming one.
const newSessionArg = "new"

// snapOutput is the --json form of a snap.
type snapOutput struct {
	Session string `json:"session,omitempty"`
	align.SnapResult
}

type snapOpts struct {
	snapFlags
	x, y    float64
	session string
	write   bool
	json    bool
}

// snapCommand creates the snap command.
func (c *CLI) snapCommand() *cobra.Command {
	var opts snapOpts

	cmd := &cobra.Command{
		Use:   "snap [scene] [element]",
		Short: "Snap an element of a scene to alignment guides",
		Long: `Snap an element of a scene to alignment guides.

The element is moved to --x/--y (default: its position in the scene) and snapped
against the canvas center, the other elements, the canvas edges and the grid.

Use --session new to start a drag session that remembers the last snap of each
element, then pass the printed id with --session on later calls so a snapped
element stays put until it is dragged clearly away.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnap(cmd, args[0], args[1], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().Float64Var(&opts.x, "x", 0, "x position to snap from")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "y position to snap from")
	cmd.Flags().StringVar(&opts.session, "session", "", "drag session id, or 'new' to start one")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the snapped position back to the scene file")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runSnap(cmd *cobra.Command, path, id string, opts snapOpts) error {
	ctx := cmd.Context()
	sc, err := scene.ReadFile(path)
	if err != nil {
		return err
	}
	el, ok := sc.Element(id)
	if !ok {
		return errors.New(errors.ErrCodeElementNotFound, "element %q not in %s", id, path)
	}
	if cmd.Flags().Changed("x") {
		el.X = opts.x
	}
	if cmd.Flags().Changed("y") {
		el.Y = opts.y
	}

	settings, err := c.settings(cmd, &opts.snapFlags)
	if err != nil {
		return err
	}

	res, sessionID, err := c.snap(ctx, settings, opts, el, sc)
	if err != nil {
		return err
	}
	c.Logger.Debug("snap", "element", id, "tolerance", settings.SnapTolerance, "zoom", opts.zoom)

	if opts.write {
		if err := sc.Move(id, res.X, res.Y); err != nil {
			return err
		}
		if err := scene.WriteFile(sc, path); err != nil {
			return err
		}
	}

	if opts.json {
		return writeJSON(cmd.OutOrStdout(), snapOutput{Session: sessionID, SnapResult: res})
	}

	printSnapResult(id, el, res)
	if opts.write {
		printFile(path)
	}
	if opts.session == newSessionArg {
		printNewline()
		printKeyValue("Session", sessionID)
		printNextStep("Continue dragging", fmt.Sprintf("canvasnap snap %s %s --session %s --x ...", path, id, sessionID))
	}
	return nil
}

// snap runs one snap, through a stored session when opts.session is set.
func (c *CLI) snap(ctx context.Context, settings align.Settings, opts snapOpts, el geom.ElementBounds, sc *scene.Scene) (align.SnapResult, string, error) {
	others := sc.Siblings(el.ID)

	if opts.session == "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return align.SnapResult{}, "", err
		}
		eng := align.New(
			align.WithSettings(settings),
			align.WithKillSwitch(cfg.KillSwitch()),
			align.WithLogger(c.Logger),
		)
		return eng.CalculateSnap(el, others, sc.Canvas, opts.zoom), "", nil
	}

	mgr, err := c.sessionManager(settings)
	if err != nil {
		return align.SnapResult{}, "", err
	}
	id := opts.session
	if id == newSessionArg {
		sess, err := mgr.Create(ctx, sc.ID, &settings)
		if err != nil {
			return align.SnapResult{}, "", err
		}
		id = sess.ID
	}
	res, err := mgr.Snap(ctx, id, el, others, sc.Canvas, opts.zoom)
	return res, id, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
