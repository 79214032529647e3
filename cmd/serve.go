package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"

	"github.com/aji27/comgr-hs18/renderer"
	"github.com/aji27/comgr-hs18/scene"
	"github.com/aji27/comgr-hs18/tracer"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli"
)

// Limits on the work a single render request may ask for.
const (
	maxServedFrameDim = 2048
	maxServedRays     = 4096
	maxServedSamples  = 64
	maxServedBounces  = 64
)

// Query parameters accepted by the render endpoint.
type renderRequest struct {
	Scene        string            `query:"scene"`
	Width        uint32            `query:"width"`
	Height       uint32            `query:"height"`
	AntiAliasing bool              `query:"aa"`
	AASamples    int               `query:"aa-samples"`
	Gamma        bool              `query:"gamma"`
	BVH          bool              `query:"bvh"`
	Seed         int64             `query:"seed"`
	Lambert      bool              `query:"lambert"`
	Phong        bool              `query:"phong"`
	Reflection   bool              `query:"reflection"`
	Shadows      tracer.ShadowMode `query:"shadows"`
	PathTracing  bool              `query:"path"`
	Rays         int               `query:"rays"`
	MaxBounces   int               `query:"max-bounces"`
	Sampling     tracer.Sampling   `query:"sampling"`
}

func defaultRenderRequest() *renderRequest {
	opts := renderer.DefaultOptions()
	return &renderRequest{
		Scene:       "cornell-path",
		Width:       256,
		Height:      256,
		AASamples:   opts.AntiAliasingSamples,
		BVH:         true,
		PathTracing: opts.PathTracing,
		Rays:        64,
		MaxBounces:  opts.PathTracingMaxBounces,
	}
}

func (req *renderRequest) options() renderer.Options {
	opts := renderer.DefaultOptions()
	opts.FrameW = req.Width
	opts.FrameH = req.Height
	opts.AntiAliasing = req.AntiAliasing
	opts.AntiAliasingSamples = req.AASamples
	opts.GammaCorrect = req.Gamma
	opts.UseBVH = req.BVH
	opts.Seed = req.Seed
	opts.Lambert = req.Lambert
	opts.Phong = req.Phong
	opts.Reflection = req.Reflection
	opts.Shadows = req.Shadows
	opts.PathTracing = req.PathTracing
	opts.PathTracingRays = req.Rays
	opts.PathTracingMaxBounces = req.MaxBounces
	opts.Sampling = req.Sampling
	return opts
}

func (req *renderRequest) checkLimits() error {
	switch {
	case req.Width > maxServedFrameDim || req.Height > maxServedFrameDim:
		return fmt.Errorf("frame dimensions must not exceed %d", maxServedFrameDim)
	case req.Rays > maxServedRays:
		return fmt.Errorf("path tracing rays must not exceed %d", maxServedRays)
	case req.AASamples > maxServedSamples:
		return fmt.Errorf("anti-aliasing samples must not exceed %d", maxServedSamples)
	case req.MaxBounces > maxServedBounces:
		return fmt.Errorf("path tracing bounces must not exceed %d", maxServedBounces)
	}
	return nil
}

type sceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	e.GET("/scenes", listScenes)
	e.GET("/render", renderScene)
	return e
}

func listScenes(c echo.Context) error {
	presets := scene.Presets()
	list := make([]sceneInfo, 0, len(presets))
	for _, p := range presets {
		list = append(list, sceneInfo{Name: p.Name, Description: p.Description})
	}
	return c.JSON(http.StatusOK, list)
}

// Render a frame and reply with a PNG. The render is aborted if the client
// goes away.
func renderScene(c echo.Context) error {
	req := defaultRenderRequest()
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := req.checkLimits(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	preset, err := scene.LookupPreset(req.Scene)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	sc, err := preset.Build()
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, req.options())
	if err != nil {
		if errors.Is(err, renderer.ErrInvalidOptions) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	img, err := r.Render(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// Serve rendered frames over http.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	e := newServer()
	addr := ctx.String("listen")
	logger.Noticef("serving frames on %s", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
