package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func newCameraCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camera",
		Short: "Create and inspect camera files",
		Long: "A camera file holds 15 whitespace-separated numbers: the frustum's left,\n" +
			"right, bottom, top, near and far, then the eye, centre and up vectors.",
	}
	cmd.AddCommand(newCameraInitCmd(), newCameraShowCmd())
	return cmd
}

func newCameraInitCmd() *cobra.Command {
	var eye, center []float64

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the default camera to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := render.DefaultCamera()
			if len(eye) > 0 {
				v, err := vec3Flag("eye", eye)
				if err != nil {
					return err
				}
				c.Eye = v
			}
			if len(center) > 0 {
				v, err := vec3Flag("center", center)
				if err != nil {
					return err
				}
				c.Center = v
			}
			if err := render.SaveCamera(args[0], c); err != nil {
				return err
			}
			slog.Info("camera written", "path", args[0])
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&eye, "eye", nil, "eye position x,y,z")
	cmd.Flags().Float64SliceVar(&center, "center", nil, "look-at point x,y,z")
	return cmd
}

func newCameraShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Print a camera's basis and matrices",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := render.DefaultCamera()
			if len(args) > 0 {
				var err error
				if c, err = render.LoadCamera(args[0]); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frustum  l=%g r=%g b=%g t=%g n=%g f=%g\n", c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
			fmt.Fprintf(out, "eye      %s\ncenter   %s\nup       %s\n", fmtVec(c.Eye), fmtVec(c.Center), fmtVec(c.Up))
			fmt.Fprintf(out, "forward  %s\nx axis   %s\n", fmtVec(c.Forward), fmtVec(c.XAxis))
			printMatrix(cmd, "projection", c.Projection)
			printMatrix(cmd, "view", c.View)
			return nil
		},
	}
}

func vec3Flag(name string, v []float64) (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("--%s needs 3 values, got %d", name, len(v))
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

func fmtVec(v math3d.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// printMatrix prints m row by row.
func printMatrix(cmd *cobra.Command, name string, m math3d.Mat4) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", name)
	for row := range 4 {
		fmt.Fprintf(out, "  % 10.4f % 10.4f % 10.4f % 10.4f\n", m.Get(row, 0), m.Get(row, 1), m.Get(row, 2), m.Get(row, 3))
	}
}
