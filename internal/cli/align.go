package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/geom"
	"github.com/matzehuels/canvasnap/pkg/scene"
)

// canvasTarget aligns against the canvas instead of an element.
const canvasTarget = "canvas"

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	var (
		to     string
		write  bool
		asJSON bool
	)

	names := make([]string, len(align.Alignments))
	for i, a := range align.Alignments {
		names[i] = string(a)
	}

	cmd := &cobra.Command{
		Use:   "align [scene] [element] [alignment]",
		Short: "Align an element to the canvas or to another element",
		Long: `Align an element to the canvas or to another element.

Alignments: ` + strings.Join(names, ", ") + `.

center-h centers horizontally (moves x), center-v centers vertically (moves y).
Only the coordinate the alignment names is changed.`,
		Args: cobra.ExactArgs(3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 2 {
				return names, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.runAlign(args[0], args[1], args[2], to, write)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			printSuccess("Aligned %s %s to %s %s", StyleValue.Render(args[1]), args[2], to, StyleNumber.Render(formatPoint(p.X, p.Y)))
			if write {
				printFile(args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", canvasTarget, "alignment target: 'canvas' or an element id")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the new position back to the scene file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the position as JSON")

	return cmd
}

func (c *CLI) runAlign(path, id, alignment, to string, write bool) (geom.Point, error) {
	a, err := align.ParseAlignment(alignment)
	if err != nil {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidAlignment, "%v", err)
	}

	sc, err := scene.ReadFile(path)
	if err != nil {
		return geom.Point{}, err
	}
	el, ok := sc.Element(id)
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeElementNotFound, "element %q not in %s", id, path)
	}

	var p geom.Point
	if to == canvasTarget {
		p = align.AlignToCanvas(el, sc.Canvas, a)
	} else {
		target, ok := sc.Element(to)
		if !ok {
			return geom.Point{}, errors.New(errors.ErrCodeElementNotFound, "target %q not in %s", to, path)
		}
		p = align.AlignToElement(el, target, a)
	}
	c.Logger.Debug("align", "element", id, "to", to, "alignment", a, "x", p.X, "y", p.Y)

	if write {
		if err := sc.Move(id, p.X, p.Y); err != nil {
			return geom.Point{}, err
		}
		if err := scene.WriteFile(sc, path); err != nil {
			return geom.Point{}, fmt.Errorf("write scene %s: %w", path, err)
		}
	}

	return p, nil
}
