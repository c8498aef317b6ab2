package commands

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rigforge/rigforge/config"
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/steps"
)

// StepsCmd inspects and runs custom build steps.
var StepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Inspect and run custom build steps",
	Long: `Custom steps are user scripts run before or after a guide build.
The step lists live on the guide's rig options; scripts resolve against
the configured steps root (steps.path, RIGFORGE_STEPS_PATH).`,
}

var stepsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts in the steps directory",
	Long: `List the scripts in the configured steps directory. With --watch
the listing stays live: directory changes reprint it, and edits to the
local config retarget it to the new steps.path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.GetStepsPath()
		if err != nil {
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			files, err := steps.ListScripts(dir)
			if err != nil {
				return err
			}
			printScripts(dir, files)
			return nil
		}
		return watchSteps(cmd, dir)
	},
}

func printScripts(dir string, files []string) {
	pterm.Info.Printf("%d script(s) in %s\n", len(files), dir)
	for _, f := range files {
		pterm.Printf("  %s\n", f)
	}
}

// watchSteps keeps a live listing of the steps directory until interrupted.
func watchSteps(cmd *cobra.Command, dir string) error {
	var mu sync.Mutex
	w, err := steps.NewWatcher(dir)
	if err != nil {
		return err
	}
	printScripts(dir, w.List())
	d := dir
	w.OnChange(func(files []string) { printScripts(d, files) })
	w.Start()
	defer func() {
		mu.Lock()
		w.Stop()
		mu.Unlock()
	}()

	// A running watch follows steps.path edits in the local config file.
	if cfgPath := config.LocalConfigPath(); cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			cw, err := config.NewWatcher(cfgPath)
			if err != nil {
				return err
			}
			config.SetGlobalWatcher(cw)
			defer config.SetGlobalWatcher(nil)
			defer cw.Stop()
			cw.OnReload(func(*config.Config) error {
				next, err := config.GetStepsPath()
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				if next == dir {
					return nil
				}
				nw, err := steps.NewWatcher(next)
				if err != nil {
					return err
				}
				nd := next
				nw.OnChange(func(files []string) { printScripts(nd, files) })
				nw.Start()
				w.Stop()
				w, dir = nw, next
				printScripts(next, nw.List())
				return nil
			})
			cw.Start()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	pterm.Info.Println("Watching for changes, Ctrl-C to stop")
	<-ctx.Done()
	return nil
}

var stepsRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a guide's custom steps",
	Long: `Run the pre or post custom step list of the guide in the scene
file. The shared context (rig name, model, step phase) is passed to each
script as JSON on stdin. Each step runs under steps.timeout_seconds; with
steps.stop_on_error unset, a failing step is skipped instead of aborting
the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scenePath(cmd)
		if err != nil {
			return err
		}
		sc, err := requireScene(path)
		if err != nil {
			return err
		}
		model, err := findModelRoot(sc)
		if err != nil {
			return err
		}

		g, err := newGraph(sc)
		if err != nil {
			return err
		}
		if err := g.SetFromHierarchy(model, true); err != nil {
			return err
		}

		phase, _ := cmd.Flags().GetString("phase")
		var raw string
		switch phase {
		case "pre":
			if !g.BoolValue("doPreCustomStep") {
				pterm.Info.Println("Pre custom steps disabled on this guide")
				return nil
			}
			raw = g.StringValue("preCustomStep")
		case "post":
			if !g.BoolValue("doPostCustomStep") {
				pterm.Info.Println("Post custom steps disabled on this guide")
				return nil
			}
			raw = g.StringValue("postCustomStep")
		default:
			return errors.Newf("unknown phase %q, want pre or post", phase)
		}

		list := steps.ParseList(raw)
		if len(list) == 0 {
			pterm.Info.Printf("No %s custom steps on guide %s\n", phase, model.Name())
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir, err := config.GetStepsPath()
		if err != nil {
			return err
		}
		runner := steps.NewRunner(dir)
		runner.Timeout = time.Duration(cfg.Steps.TimeoutSeconds) * time.Second
		if !cfg.Steps.StopOnError {
			runner.Prompt = steps.ContinuePrompter{}
		}
		shared := steps.SharedContext{
			"rig_name": g.StringValue("rig_name"),
			"model":    model.Name(),
			"phase":    phase,
		}

		stopped, err := runner.RunAll(cmd.Context(), list, shared)
		if err != nil {
			return err
		}
		if stopped {
			return errors.Wrap(errors.ErrStepFailed, phase)
		}
		pterm.Success.Printf("Ran %d %s step(s)\n", len(list), phase)
		return nil
	},
}

func init() {
	stepsListCmd.Flags().Bool("watch", false, "Keep the listing live until interrupted")
	stepsRunCmd.Flags().String("scene", "", "Scene file (default from config scene.path)")
	stepsRunCmd.Flags().String("phase", "pre", "Step phase to run: pre or post")

	StepsCmd.AddCommand(stepsListCmd)
	StepsCmd.AddCommand(stepsRunCmd)
}
