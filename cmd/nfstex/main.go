// nfstex inspects NFS track texture blocks and generates the UVs the game's
// renderer would use for them.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/nfstex/internal/atlas"
	"github.com/Faultbox/nfstex/internal/config"
	"github.com/Faultbox/nfstex/internal/logger"
	"github.com/Faultbox/nfstex/internal/track"
	"github.com/Faultbox/nfstex/pkg/formats"
	"github.com/Faultbox/nfstex/pkg/texture"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes one command line and flushes the log.
func run(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", zap.Strings("args", args), zap.Error(err))
	}
	logger.Sync()
	return err
}

var rootCmd = &cobra.Command{
	Use:   "nfstex",
	Short: "Resolve NFS track texture metadata and generate UVs",
	Long: `nfstex reads the texture blocks of Need for Speed tracks (NFS2 TRK
and NFS3/NFS4 FRD formats), resolves their size, lane flag and texture
lookup id, places them in a texture array and generates the per-quad UV
coordinates for track geometry.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default: ./nfstex.yaml or user config dir)")
	pf.Bool("debug", false, "Enable debug logging")
	pf.String("log-file", "", "Also write JSON logs to this file")
	pf.StringP("format", "f", "", "Track format, e.g. NFS_3, NFS_4, NFS_2_SE (default from config)")

	rootCmd.AddCommand(uvCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	var ov config.Overrides
	ov.Debug, _ = cmd.Flags().GetBool("debug")
	ov.LogFile, _ = cmd.Flags().GetString("log-file")
	ov.Version, _ = cmd.Flags().GetString("format")
	// Only defined on some commands; lookup errors leave the zero value
	ov.Workers, _ = cmd.Flags().GetInt("workers")
	ov.MaxLayers, _ = cmd.Flags().GetInt("max-layers")

	loaded, err := config.Load(path, ov)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("format", cfg.Track.Version),
		zap.Int("max_layers", cfg.Atlas.MaxLayers),
		zap.Int("workers", cfg.UV.Workers))
	return nil
}

func trackVersion() (texture.Version, error) {
	v, err := texture.ParseVersion(cfg.Track.Version)
	if err != nil {
		return texture.Unknown, err
	}
	if v == texture.Unknown {
		return v, fmt.Errorf("track format must be set")
	}
	return v, nil
}

// uv command
var uvCmd = &cobra.Command{
	Use:   "uv",
	Short: "Generate the UVs of one textured quad",
	Long: `Generate the six UV coordinates of one textured quad from a texture
block given on the command line.

Examples:
  nfstex uv -f NFS_4 --kind ROAD --flags 0x14 --corners 0,0,1,0,1,1,0,1
  nfstex uv -f NFS_2 --kind ROAD --texnum 12 --flags 0x1000 --max-u 0.5`,
	Args: cobra.NoArgs,
	RunE: runUV,
}

func init() {
	f := uvCmd.Flags()
	f.String("kind", "ROAD", "Geometry kind: XOBJ, OBJ_POLY, ROAD, GLOBAL, CAR, LANE, SOUND, LIGHT, VROAD")
	f.String("flags", "0", "Polygon texture flags (decimal or 0x hex)")
	f.Float32Slice("corners", []float32{0, 0, 1, 0, 1, 1, 0, 1}, "FRD corner points x0,y0,...,x3,y3")
	f.Uint16("texnum", 0, "TRK texture number")
	f.Uint16("qfs-index", 0, "FRD QFS index")
	f.Uint16("width", 0, "FRD texture width")
	f.Uint16("height", 0, "FRD texture height")
	f.Bool("lane", false, "FRD lane flag")
	f.Float32("max-u", 1, "Atlas slot U extent")
	f.Float32("max-v", 1, "Atlas slot V extent")
}

func runUV(cmd *cobra.Command, _ []string) error {
	v, err := trackVersion()
	if err != nil {
		return err
	}

	kindName, _ := cmd.Flags().GetString("kind")
	kind, err := texture.ParseEntityKind(kindName)
	if err != nil {
		return err
	}

	flagStr, _ := cmd.Flags().GetString("flags")
	flags, err := strconv.ParseUint(flagStr, 0, 32)
	if err != nil {
		return fmt.Errorf("parse flags %q: %w", flagStr, err)
	}

	payload, err := payloadFromFlags(cmd, v)
	if err != nil {
		return err
	}

	rec, err := texture.NewRecord(v, texture.PayloadLookupID(v, payload), []byte{0}, 0, 0, payload)
	if err != nil {
		return err
	}

	maxU, _ := cmd.Flags().GetFloat32("max-u")
	maxV, _ := cmd.Flags().GetFloat32("max-v")
	pl := texture.Placement{Bounds: texture.UVBounds{MaxU: maxU, MaxV: maxV}}
	if !pl.Bounds.Valid() {
		return fmt.Errorf("invalid atlas extent %gx%g", maxU, maxV)
	}

	uvs, err := texture.GenerateUVs(rec, pl, kind, uint32(flags))
	if err != nil {
		return err
	}

	w, h := texture.Dimensions(rec)
	fmt.Printf("Format:   %s\n", v)
	fmt.Printf("Kind:     %s\n", kind)
	fmt.Printf("Texture:  id=%d size=%dx%d lane=%t\n", texture.LookupID(rec), w, h, texture.IsLane(rec))
	printOrientation(v, uint32(flags))

	if len(uvs) == 0 {
		fmt.Println("No UVs: geometry of this kind takes no coordinates from the texture")
		return nil
	}
	for i, uv := range uvs {
		fmt.Printf("  %d: (%.4f, %.4f)\n", i, uv.X(), uv.Y())
	}
	return nil
}

func payloadFromFlags(cmd *cobra.Command, v texture.Version) (texture.Payload, error) {
	switch v.PayloadKind() {
	case texture.PayloadTRK:
		texnum, _ := cmd.Flags().GetUint16("texnum")
		return texture.TRKPayload(formats.TRKTextureBlock{TexNumber: texnum}), nil
	case texture.PayloadFRD:
		corners, _ := cmd.Flags().GetFloat32Slice("corners")
		if len(corners) != 8 {
			return texture.Payload{}, fmt.Errorf("--corners needs 8 values, got %d", len(corners))
		}
		var b formats.FRDTextureBlock
		copy(b.Corners[:], corners)
		b.Width, _ = cmd.Flags().GetUint16("width")
		b.Height, _ = cmd.Flags().GetUint16("height")
		b.IsLane, _ = cmd.Flags().GetBool("lane")
		b.QFSIndex, _ = cmd.Flags().GetUint16("qfs-index")
		return texture.FRDPayload(b), nil
	default:
		return texture.NoPayload(), nil
	}
}

func printOrientation(v texture.Version, flags uint32) {
	var o texture.Orientation
	switch v.PayloadKind() {
	case texture.PayloadTRK:
		o = texture.DecodeTRKFlags(flags)
	case texture.PayloadFRD:
		o = texture.DecodeFRDFlags(flags)
	default:
		return
	}

	fmt.Printf("Rotation: %d deg, hflip=%t vflip=%t\n", int(o.Quadrant)*90, o.HFlip, o.VFlip)
	if v.PayloadKind() != texture.PayloadFRD {
		return
	}
	if u, vv, ok := o.Tiling(); !ok {
		fmt.Printf("Tiling:   unknown scale %d\n", o.TileScale)
	} else if cfg.Atlas.Repeatable {
		fmt.Printf("Tiling:   %dx%d, one-sided=%t\n", u, vv, o.OneSided)
	} else {
		fmt.Printf("Tiling:   clamped (repeat disabled), one-sided=%t\n", o.OneSided)
	}
}

// inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <blocks.bin>",
	Short: "Show the textures of a texture block table",
	Long: `Parse a texture block table extracted from a track file, resolve the
attributes of every texture and show where the atlas places it.

The table is a little-endian uint32 count followed by that many TRK
(NFS2 family) or FRD (NFS3/NFS4) texture blocks. With --kind, UVs are
generated for every texture using the configured worker count.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.Int("workers", 0, "UV workers (default from config, 0 = one per CPU)")
	f.Int("max-layers", 0, "Atlas layer limit (default from config)")
	f.String("kind", "", "Also generate UVs for this geometry kind")
	f.String("flags", "0", "Polygon texture flags used with --kind")
	f.Uint32("texture-size", 256, "Assumed width and height of textures whose block carries no size")
}

func runInspect(cmd *cobra.Command, args []string) error {
	v, err := trackVersion()
	if err != nil {
		return err
	}

	// Pixel data lives in the track's QFS container, which is not read here,
	// so every texture gets a placeholder image of the assumed size.
	size, _ := cmd.Flags().GetUint32("texture-size")
	if size == 0 {
		return fmt.Errorf("--texture-size must be positive")
	}
	if v.PayloadKind() == texture.PayloadTRK {
		logger.Warn("texture sizes not read from container, assuming square textures",
			zap.Uint32("size", size))
	}
	placeholder := track.PixelSourceFunc(func(uint32) (track.Image, error) {
		return track.Image{Data: []byte{0}, Width: size, Height: size}, nil
	})

	var set *track.TextureSet
	switch v.PayloadKind() {
	case texture.PayloadTRK:
		blocks, err := formats.ParseTRKTextureBlocksFile(args[0])
		if err != nil {
			return err
		}
		set, err = track.FromTRKBlocks(v, blocks, placeholder)
		if err != nil {
			return err
		}
	case texture.PayloadFRD:
		blocks, err := formats.ParseFRDTextureBlocksFile(args[0])
		if err != nil {
			return err
		}
		set, err = track.FromFRDBlocks(v, blocks, placeholder)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s tracks have no texture block table", v)
	}

	if err := set.Pack(atlas.Options{MaxLayers: cfg.Atlas.MaxLayers}); err != nil {
		return err
	}
	logger.Sugar.Debugf("inspecting %d textures from %s", set.Len(), args[0])

	fmt.Printf("Table:    %s\n", args[0])
	fmt.Printf("Format:   %s\n", v)
	fmt.Printf("Textures: %d\n\n", set.Len())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tLANE\tLAYER\tMAX U\tMAX V")
	for _, rec := range set.Records() {
		w, h := texture.Dimensions(rec)
		pl, _ := set.Placement(rec.ID())
		fmt.Fprintf(tw, "%d\t%dx%d\t%t\t%d\t%.4f\t%.4f\n",
			texture.LookupID(rec), w, h, texture.IsLane(rec), pl.Layer, pl.Bounds.MaxU, pl.Bounds.MaxV)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	kindName, _ := cmd.Flags().GetString("kind")
	if kindName == "" {
		return nil
	}
	return printSetUVs(cmd, set, kindName)
}

func printSetUVs(cmd *cobra.Command, set *track.TextureSet, kindName string) error {
	kind, err := texture.ParseEntityKind(kindName)
	if err != nil {
		return err
	}
	flagStr, _ := cmd.Flags().GetString("flags")
	flags, err := strconv.ParseUint(flagStr, 0, 32)
	if err != nil {
		return fmt.Errorf("parse flags %q: %w", flagStr, err)
	}

	records := set.Records()
	reqs := make([]track.UVRequest, len(records))
	for i, rec := range records {
		reqs[i] = track.UVRequest{TextureID: rec.ID(), Kind: kind, Flags: uint32(flags)}
	}

	results, err := set.GenerateUVs(reqs, cfg.UV.Workers)
	if err != nil {
		return err
	}

	fmt.Printf("\nUVs for %s, flags 0x%x:\n", kind, flags)
	for _, res := range results {
		fmt.Printf("  texture %d:", res.Request.TextureID)
		if len(res.UVs) == 0 {
			fmt.Print(" none")
		}
		for _, uv := range res.UVs {
			fmt.Printf(" (%.3f,%.3f)", uv.X(), uv.Y())
		}
		fmt.Println()
	}
	return nil
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save the effective configuration",
	Long: `Print the configuration after defaults, config file and flags are
merged. With --save it is written to the user config directory, or to
--output when given.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().Bool("save", false, "Write the configuration to disk")
	configCmd.Flags().StringP("output", "o", "", "Path to write (default: user config dir)")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fmt.Print(string(data))

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(config.ConfigDir(), "config.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(output)
	}
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	logger.Info("config saved", zap.String("path", output))
	return nil
}

// version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// Runs without config or logging
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nfstex %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
