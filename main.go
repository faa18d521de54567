package main

import (
	"os"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/cmd"
	"github.com/urfave/cli"
)

// Flags shared by the export and test-render commands.
var exportFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out, o",
		Usage: "export directory; WARNING: existing content at this path is deleted irreversibly",
	},
	cli.StringFlag{
		Name:  "focus",
		Value: "0,0,0",
		Usage: "focus point the cameras orbit, as x,y,z",
	},
	cli.Float64Flag{
		Name:  "distance",
		Value: 7.0,
		Usage: "camera distance from the focus point",
	},
	cli.IntFlag{
		Name:  "train",
		Value: 100,
		Usage: "number of training frames",
	},
	cli.IntFlag{
		Name:  "val",
		Value: 100,
		Usage: "number of validation frames",
	},
	cli.IntFlag{
		Name:  "test",
		Value: 200,
		Usage: "number of test frames",
	},
	cli.Float64Flag{
		Name:  "fov",
		Value: 50.0,
		Usage: "horizontal field of view in degrees",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "pose sampling seed; 0 selects a time-based seed",
	},
	cli.Float64Flag{
		Name:  "min-polar",
		Value: 0.0,
		Usage: "minimum polar angle in degrees measured from +Z",
	},
	cli.Float64Flag{
		Name:  "max-polar",
		Value: 180.0,
		Usage: "maximum polar angle in degrees measured from +Z",
	},
	cli.IntFlag{
		Name:  "width",
		Value: 960,
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 540,
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: 128,
		Usage: "samples per pixel",
	},
	cli.StringFlag{
		Name:  "engine",
		Value: "preview",
		Usage: "rendering engine: preview (built-in) or command (external)",
	},
	cli.StringFlag{
		Name:  "engine-cmd",
		Usage: "external engine command; {out}, {width}, {height}, {spp} and {device} are substituted per frame",
	},
	cli.StringFlag{
		Name:  "device",
		Value: "GPU",
		Usage: "compute device hint passed through to the engine",
	},
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "3dgs-analysis-pipeline"
	app.Usage = "export NeRF synthetic datasets and inspect gaussian-splat point clouds"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "export",
			Usage: "render a synthetic dataset with randomized camera poses",
			Description: `
Sample camera positions uniformly on a sphere around the focus point, render
one image per pose and write one transforms_<split>.json manifest per dataset
split (train/val/test).

The export directory is cleared before rendering; existing content at that
path is deleted irreversibly.`,
			Flags:  exportFlags,
			Action: cmd.Export,
		},
		{
			Name:  "test-render",
			Usage: "render a single test frame to verify engine settings",
			Description: `
Render one frame from the first sampled camera pose to <out>/test.png without
writing any dataset manifests. The export directory is still cleared first.`,
			Flags:  exportFlags,
			Action: cmd.TestRenderFrame,
		},
		{
			Name:  "inspect",
			Usage: "sample poses without rendering and chart their coverage",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count",
					Value: 400,
					Usage: "number of poses to sample",
				},
				cli.Float64Flag{
					Name:  "distance",
					Value: 7.0,
					Usage: "camera distance from the focus point",
				},
				cli.StringFlag{
					Name:  "focus",
					Value: "0,0,0",
					Usage: "focus point the cameras orbit, as x,y,z",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "pose sampling seed; 0 selects a time-based seed",
				},
				cli.Float64Flag{
					Name:  "min-polar",
					Value: 0.0,
					Usage: "minimum polar angle in degrees measured from +Z",
				},
				cli.Float64Flag{
					Name:  "max-polar",
					Value: 180.0,
					Usage: "maximum polar angle in degrees measured from +Z",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "poses.html",
					Usage: "output html file for the coverage chart",
				},
			},
			Action: cmd.Inspect,
		},
		{
			Name:  "ply",
			Usage: "inspect gaussian-splat point clouds",
			Subcommands: []cli.Command{
				{
					Name:      "info",
					Usage:     "summarize the attribute groups of a point cloud",
					ArgsUsage: "model.ply",
					Action:    cmd.PlyInfo,
				},
				{
					Name:      "compare",
					Usage:     "compare the attribute group sizes of two point clouds",
					ArgsUsage: "first.ply second.ply",
					Action:    cmd.PlyCompare,
				},
			},
		},
	}

	app.Run(os.Args)
}
