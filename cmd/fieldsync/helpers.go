// Shared helpers for fieldsync CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cloudtree/fieldsync/internal/connectivity"
	"github.com/cloudtree/fieldsync/internal/dataservice"
	"github.com/cloudtree/fieldsync/internal/gateway"
	"github.com/cloudtree/fieldsync/internal/prefs"
	"github.com/cloudtree/fieldsync/internal/store"
	"github.com/cloudtree/fieldsync/internal/syncengine"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// app bundles the wired-up components a command works with. The caller must
// defer app.Close().
type app struct {
	Store   *store.Store
	Gateway *gateway.Client
	Prefs   *prefs.Prefs
	Oracle  *connectivity.Oracle
	Service *dataservice.Service
	Engine  *syncengine.Engine
}

// openApp resolves directories, opens the local database, and wires the
// gateway, connectivity oracle, data service, and sync engine together.
func openApp() (*app, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	p, err := prefs.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load prefs: %w", err)
	}
	st, err := store.Open(cliConfig.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	gw := gateway.NewClient(cliConfig, logger)
	oracle := connectivity.NewOracle(gw, p, logger)

	return &app{
		Store:   st,
		Gateway: gw,
		Prefs:   p,
		Oracle:  oracle,
		Service: dataservice.New(st, gw, oracle, p, logger),
		Engine:  syncengine.New(st, gw, logger),
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() error {
	return a.Store.Close()
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printSoils renders soils for humans or as JSON per --json.
func printSoils(soils []types.Soil) error {
	if flagJSON {
		return printJSON(soils)
	}
	if len(soils) == 0 {
		fmt.Println("no soils")
		return nil
	}
	for _, s := range soils {
		fmt.Printf("%-10s  %-24s  (%.5f, %.5f)  %s\n", s.ID, s.Name, s.Latitude, s.Longitude, s.SyncStatus)
	}
	return nil
}

// printParameters renders readings for humans or as JSON per --json.
func printParameters(params []types.Parameter) error {
	if flagJSON {
		return printJSON(params)
	}
	if len(params) == 0 {
		fmt.Println("no readings")
		return nil
	}
	for _, p := range params {
		fmt.Printf("%-10s  hum=%.1f temp=%.1f ec=%.2f ph=%.2f n=%.1f p=%.1f k=%.1f  %s  %s\n",
			p.ID, p.Moisture, p.Temperature, p.EC, p.PH,
			p.Nitrogen, p.Phosphorus, p.Potassium, p.DateRecorded, p.SyncStatus)
		if p.Comments != "" {
			fmt.Printf("            %s\n", p.Comments)
		}
	}
	return nil
}

// printSyncResult renders a sync pass outcome for humans or as JSON.
func printSyncResult(result types.SyncResult) error {
	if flagJSON {
		return printJSON(result)
	}
	fmt.Printf("%s: %d items\n", result.Message, result.ItemsSynced)
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "  error:", e)
	}
	if !result.Success {
		fmt.Println("sync finished with errors")
	}
	return nil
}
