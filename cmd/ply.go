package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/TobiasNeumeier/3dgs-analysis-pipeline/ply"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// PlyInfo summarizes the attribute groups of a gaussian-splat point cloud.
func PlyInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing ply file argument")
	}

	path := ctx.Args().First()
	cloud, err := ply.Read(path)
	if err != nil {
		return err
	}

	dims := cloud.Dims()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Attribute", "Count"})
	table.Append([]string{"points", fmt.Sprintf("%d", dims.Points)})
	table.Append([]string{"opacities", fmt.Sprintf("%d", dims.Opacities)})
	table.Append([]string{"dc coefficients", fmt.Sprintf("%d", dims.DC)})
	table.Append([]string{"sh rest components", fmt.Sprintf("%d", dims.SHRestComponents)})
	table.Append([]string{"scale components", fmt.Sprintf("%d", dims.ScaleComponents)})
	table.Append([]string{"rotation components", fmt.Sprintf("%d", dims.RotationComponents)})
	table.Render()

	logger.Noticef("point cloud %s\n%s", path, buf.String())
	return nil
}

// PlyCompare checks whether two point clouds share the same attribute group
// sizes, e.g. a trained model against its initialization cloud.
func PlyCompare(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("expected two ply file arguments")
	}

	first, err := ply.Read(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	second, err := ply.Read(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	matching := first.MatchingDims(second)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Attribute group", "Matching"})
	mismatch := false
	for _, group := range []string{ply.GroupXYZ, ply.GroupOpacities, ply.GroupDC} {
		table.Append([]string{group, fmt.Sprintf("%t", matching[group])})
		if !matching[group] {
			mismatch = true
		}
	}
	table.Render()

	logger.Noticef("dimension comparison\n%s", buf.String())
	if mismatch {
		return errors.New("point cloud dimensions do not match")
	}
	return nil
}
