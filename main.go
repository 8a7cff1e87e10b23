package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"SlideBoard/internal/config"
	"SlideBoard/internal/document"
	"SlideBoard/internal/export"
	"SlideBoard/internal/logging"
	boardnet "SlideBoard/internal/net"
	"SlideBoard/internal/state"
	"SlideBoard/internal/ui"
)

var (
	configPath string
	logLevel   string
	cfg        config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "slideboard",
		Short:        "Slide canvas editor with a shared websocket session",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.SetLogger(logging.New(os.Stderr, lvl))

			cfg, err = config.Load(configPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "slideboard.toml", "configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(newViewCmd(), newServeCmd(), newRenderCmd(), newExportCmd(), newDiscoverCmd(), newCallCmd())
	return root
}

// openScene builds a scene from the configuration and loads path into it
// when path is not empty.
func openScene(path string) (*state.Scene, error) {
	font, err := cfg.Font()
	if err != nil {
		return nil, err
	}
	s := state.New(cfg.SceneOptions(font))
	if path != "" {
		if err := document.Open(path, s); err != nil {
			return nil, err
		}
		logging.Logger().Info("document opened", "path", path, "shapes", s.Count())
	}
	return s, nil
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newViewCmd() *cobra.Command {
	var serve bool
	cmd := &cobra.Command{
		Use:   "view [file.json|file.pptx]",
		Short: "Open the editor window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openScene(optionalArg(args))
			if err != nil {
				return err
			}
			shared := state.NewShared(s)
			ed := ui.NewEditor(shared, cfg.Text.DefaultSize)
			opts := ui.AppOptions{Title: "SlideBoard", Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}
			if !serve {
				ui.RunApp(ed, opts)
				return nil
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			g, ctx := errgroup.WithContext(ctx)
			ready := make(chan int, 1)
			g.Go(func() error { return runServer(ctx, shared, func(port int) { ready <- port }) })

			select {
			case port := <-ready:
				opts.ShareLink = boardnet.ShareLink(port)
			case <-ctx.Done():
				cancel()
				return g.Wait()
			}
			ui.RunApp(ed, opts)
			cancel()
			return ignoreCanceled(g.Wait())
		},
	}
	cmd.Flags().BoolVar(&serve, "serve", false, "also share the scene over websocket")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [file.json|file.pptx]",
		Short: "Share a scene over websocket without a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openScene(optionalArg(args))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = runServer(ctx, state.NewShared(s), func(port int) {
				fmt.Fprintln(cmd.OutOrStdout(), boardnet.ShareLink(port))
			})
			return ignoreCanceled(err)
		},
	}
}

// runServer serves shared on the configured address and, when enabled,
// advertises it over mDNS. ready receives the bound port.
func runServer(ctx context.Context, shared *state.Shared, ready func(port int)) error {
	srv := boardnet.NewServer(shared)
	g, ctx := errgroup.WithContext(ctx)
	bound := make(chan int, 1)

	g.Go(func() error {
		return srv.ListenAndServe(ctx, cfg.Server.Addr, func(a net.Addr) {
			port := a.(*net.TCPAddr).Port
			bound <- port
			ready(port)
		})
	})

	if cfg.Server.MDNS {
		g.Go(func() error {
			var port int
			select {
			case port = <-bound:
			case <-ctx.Done():
				return nil
			}
			zone, err := boardnet.Advertise(cfg.Server.Instance, cfg.Server.Service, port, "path="+boardnet.Path)
			if err != nil {
				logging.Logger().Warn("mdns disabled", "err", err)
				return nil
			}
			<-ctx.Done()
			return zone.Shutdown()
		})
	}
	return g.Wait()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newRenderCmd() *cobra.Command {
	var width, height, thumb int
	cmd := &cobra.Command{
		Use:   "render <in> <out.png>",
		Short: "Render a scene to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openScene(args[0])
			if err != nil {
				return err
			}
			w, h := sizeOr(width, height)

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if thumb > 0 {
				err = export.Thumbnail(f, s, w, h, thumb)
			} else {
				err = export.PNG(f, s, w, h)
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "output width (default: canvas width)")
	cmd.Flags().IntVar(&height, "height", 0, "output height (default: canvas height)")
	cmd.Flags().IntVar(&thumb, "thumbnail", 0, "scale down so the longer side is at most this many pixels")
	return cmd
}

func newExportCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "export <in> <out.json|out.png|out.pdf>",
		Short: "Convert a scene or deck to another format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openScene(args[0])
			if err != nil {
				return err
			}
			w, h := sizeOr(width, height)
			return document.Save(args[1], s, w, h)
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "page width (default: canvas width)")
	cmd.Flags().IntVar(&height, "height", 0, "page height (default: canvas height)")
	return cmd
}

func sizeOr(width, height int) (int, int) {
	if width <= 0 {
		width = cfg.Canvas.Width
	}
	if height <= 0 {
		height = cfg.Canvas.Height
	}
	return width, height
}

func newDiscoverCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List SlideBoard servers on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return boardnet.Browse(cmd.Context(), cfg.Server.Service, timeout, func(name, url string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, url)
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "how long to listen for answers")
	return cmd
}

const callExample = `  slideboard call ws://192.168.1.4:8080/ws '{"op":"add_rectangle","x":10,"y":10,"w":100,"h":50,"color":"#FFFF0000"}'
  slideboard call ws://192.168.1.4:8080/ws '{"op":"selection"}'`

func newCallCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:     "call <ws-url> <command-json>",
		Short:   "Send one command to a server and print the reply",
		Example: callExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c boardnet.Command
			if err := json.Unmarshal([]byte(args[1]), &c); err != nil {
				return fmt.Errorf("parse command: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := boardnet.Dial(ctx, args[0])
			if err != nil {
				return err
			}
			defer client.Close()

			reply, callErr := client.Call(ctx, c)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(reply); err != nil {
				return err
			}
			return callErr
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "give up after this long")
	return cmd
}
