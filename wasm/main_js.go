//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/gsplat/go/api"
	"github.com/voxelsplace/gsplat/go/splat"
)

func bytesFromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

// ply2csv returns {csv, footer} as Uint8Arrays.
func ply2csv(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing ply bytes")
	}
	csv, footer, err := api.PLYToCSV(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	result.Set("csv", bytesToJS(csv))
	result.Set("footer", bytesToJS(footer))
	return result
}

func csv2ply(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing csv bytes")
	}
	var footer []byte
	if len(args) > 1 && !args[1].IsUndefined() && !args[1].IsNull() {
		footer = bytesFromJS(args[1])
	}
	out, err := api.CSVToPLY(bytesFromJS(args[0]), footer)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func ply2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing ply bytes")
	}
	out, err := api.SplatToGLB(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func mergePly(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing ply bytes")
	}
	out, err := api.MergePLYs(bytesFromJS(args[0]), bytesFromJS(args[1]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func ply2pc(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing ply bytes")
	}
	out, err := api.PLYToPointCloud(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

// pc2ply takes the edited point cloud and the donor it was made from.
func pc2ply(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing point cloud or donor bytes")
	}
	out, err := api.PointCloudToPLY(bytesFromJS(args[0]), bytesFromJS(args[1]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

// comparePly(a, b, tolerance?, nearest?) returns a summary object.
func comparePly(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing ply bytes")
	}
	var opts splat.CompareOptions
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		opts.Tolerance = args[2].Float()
	}
	if len(args) > 3 && args[3].Type() == js.TypeBoolean {
		opts.MatchNearest = args[3].Bool()
	}
	rep, err := api.ComparePLYs(bytesFromJS(args[0]), bytesFromJS(args[1]), opts)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	result.Set("compared", rep.Compared)
	result.Set("identical", rep.Identical)
	result.Set("different", rep.Different)
	result.Set("extraA", rep.ExtraA)
	result.Set("extraB", rep.ExtraB)
	result.Set("equal", rep.Equal())
	stats := js.Global().Get("Object").New()
	for _, p := range rep.Properties {
		stats.Set(p.Name, map[string]any{"max": p.MaxDiff, "mean": p.MeanDiff})
	}
	result.Set("properties", stats)
	return result
}

func packPlys(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing files object")
	}
	filesObj := args[0]
	files := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", filesObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		files[k] = bytesFromJS(filesObj.Get(k))
	}
	out, err := api.PackPLYs(files, splat.PackCompZstd)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func unpackSplatpack(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	files, err := api.UnpackSplatPackToMemory(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	for name, b := range files {
		result.Set(name, bytesToJS(b))
	}
	return result
}

func main() {
	js.Global().Set("ply2csv", js.FuncOf(ply2csv))
	js.Global().Set("csv2ply", js.FuncOf(csv2ply))
	js.Global().Set("ply2glb", js.FuncOf(ply2glb))
	js.Global().Set("mergePly", js.FuncOf(mergePly))
	js.Global().Set("ply2pc", js.FuncOf(ply2pc))
	js.Global().Set("pc2ply", js.FuncOf(pc2ply))
	js.Global().Set("comparePly", js.FuncOf(comparePly))
	js.Global().Set("packPlys", js.FuncOf(packPlys))
	js.Global().Set("unpackSplatpack", js.FuncOf(unpackSplatpack))
	select {}
}
