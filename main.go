//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/voxelsplace/gsplat/go/splat"
	"github.com/voxelsplace/gsplat/go/utils"
)

func usage() {
	fmt.Println("Usage: gsplattool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  ply2csv [-footer f.tmp] input.ply output.csv      (PLY -> editable CSV + footer side-file)")
	fmt.Println("  csv2ply [-footer f.tmp] input.csv output.ply      (CSV + footer -> PLY)")
	fmt.Println("  ply2pc input.ply output.ply                       (keep position + color only)")
	fmt.Println("  pc2ply pointcloud.ply donor.ply output.ply        (restore splats from an edited point cloud)")
	fmt.Println("  compare [-tolerance t] [-nearest] [-diff d.csv] a.ply b.ply")
	fmt.Println("  merge a.ply b.ply output.ply                      (a's splats, then b's)")
	fmt.Println("  transform [-tx -ty -tz -scale -rotz] input.ply output.ply")
	fmt.Println("  info input.ply")
	fmt.Println("  ply2glb input.ply output.glb                      (splat centers as a GLB point cloud)")
	fmt.Println("  pack [-comp none|zlib|zstd] output.splatpack in1.ply [in2.ply ...]")
	fmt.Println("  unpack input.splatpack output_dir")
	fmt.Println("  pack2glb input.splatpack output.glb")
	fmt.Println("  gennoise <splats> <amount> <output_dir>           (random 3DGS files for testing)")
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

// parseArgs parses flags for a sub-command and checks the positional count.
// want < 0 means "at least -want".
func parseArgs(fs *flag.FlagSet, args []string, want int) []string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	rest := fs.Args()
	if (want >= 0 && len(rest) != want) || (want < 0 && len(rest) < -want) {
		usage()
		os.Exit(1)
	}
	return rest
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	switch cmd {
	case "ply2csv":
		footer := fs.String("footer", "", "footer side-file (default: <input>_footer.tmp)")
		rest := parseArgs(fs, args, 2)
		if err := utils.RunPLY2CSV(rest[0], rest[1], *footer); err != nil {
			fail(err)
		}
	case "csv2ply":
		footer := fs.String("footer", "", "footer side-file to append (optional)")
		rest := parseArgs(fs, args, 2)
		if err := utils.RunCSV2PLY(rest[0], *footer, rest[1]); err != nil {
			fail(err)
		}
	case "ply2pc":
		rest := parseArgs(fs, args, 2)
		if err := utils.RunPLY2PointCloud(rest[0], rest[1]); err != nil {
			fail(err)
		}
	case "pc2ply":
		rest := parseArgs(fs, args, 3)
		if err := utils.RunPointCloud2PLY(rest[0], rest[1], rest[2]); err != nil {
			fail(err)
		}
	case "compare":
		tol := fs.Float64("tolerance", 1e-6, "largest absolute difference counted as equal")
		nearest := fs.Bool("nearest", false, "pair records by nearest position instead of index")
		diff := fs.String("diff", "", "write differing cells to this CSV")
		rest := parseArgs(fs, args, 2)
		rep, err := utils.RunCompare(rest[0], rest[1], splat.CompareOptions{Tolerance: *tol, MatchNearest: *nearest}, *diff)
		if err != nil {
			fail(err)
		}
		utils.PrintReport(os.Stdout, rep)
	case "merge":
		rest := parseArgs(fs, args, 3)
		if err := utils.RunMerge(rest[0], rest[1], rest[2]); err != nil {
			fail(err)
		}
	case "transform":
		var t splat.Transform
		fs.Float64Var(&t.Translate[0], "tx", 0, "translate X")
		fs.Float64Var(&t.Translate[1], "ty", 0, "translate Y")
		fs.Float64Var(&t.Translate[2], "tz", 0, "translate Z")
		fs.Float64Var(&t.Scale, "scale", 1, "uniform scale factor")
		fs.Float64Var(&t.RotateZDeg, "rotz", 0, "rotation about Z in degrees")
		rest := parseArgs(fs, args, 2)
		if err := utils.RunTransform(rest[0], rest[1], t); err != nil {
			fail(err)
		}
	case "info":
		rest := parseArgs(fs, args, 1)
		if _, err := utils.RunInfo(os.Stdout, rest[0]); err != nil {
			fail(err)
		}
	case "ply2glb":
		rest := parseArgs(fs, args, 2)
		if err := utils.RunSplat2GLB(rest[0], rest[1]); err != nil {
			fail(err)
		}
	case "pack":
		comp := fs.String("comp", "zstd", "compression: none, zlib or zstd")
		rest := parseArgs(fs, args, -2)
		c, err := parseCompression(*comp)
		if err != nil {
			fail(err)
		}
		if err := utils.CreatePack(rest[1:], rest[0], c); err != nil {
			fail(err)
		}
	case "unpack":
		rest := parseArgs(fs, args, 2)
		if err := utils.UnpackToDir(rest[0], rest[1]); err != nil {
			fail(err)
		}
	case "pack2glb":
		rest := parseArgs(fs, args, 2)
		if err := utils.RunPack2GLB(rest[0], rest[1]); err != nil {
			fail(err)
		}
	case "gennoise":
		rest := parseArgs(fs, args, 3)
		count, err := strconv.Atoi(rest[0])
		if err != nil {
			fail(err)
		}
		amount, err := strconv.Atoi(rest[1])
		if err != nil {
			fail(err)
		}
		if err := utils.RunGenerateNoise(count, amount, rest[2]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}

func parseCompression(s string) (splat.PackCompression, error) {
	switch s {
	case "none":
		return splat.PackCompNone, nil
	case "zlib":
		return splat.PackCompZlib, nil
	case "zstd":
		return splat.PackCompZstd, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}
