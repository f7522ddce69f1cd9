//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/kittclouds/foliobot/internal/convo"
	"github.com/kittclouds/foliobot/internal/engine"
	"github.com/kittclouds/foliobot/internal/knowledge"
	"github.com/kittclouds/foliobot/internal/livepage"
	"github.com/kittclouds/foliobot/internal/remote"
	"github.com/kittclouds/foliobot/internal/store"
	"github.com/kittclouds/foliobot/pkg/vecstore"
)

// Version info
const Version = "1.0.0"

// Global state: one engine per page lifetime.
var bot *engine.Engine

func main() {
	js.Global().Set("FolioBot", js.ValueOf(map[string]interface{}{
		"version":     js.FuncOf(getVersion),
		"initialize":  js.FuncOf(initialize),
		"ask":         js.FuncOf(ask),
		"history":     js.FuncOf(history),
		"setDetailed": js.FuncOf(setDetailed),
	}))

	println("[FolioBot] WASM Ready v" + Version)
	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize builds the engine over the live DOM.
// Args: [apiKey string]. An empty key disables the remote fallback.
func initialize(this js.Value, args []js.Value) interface{} {
	apiKey := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		apiKey = args[0].String()
	}

	fs, err := indexeddb.NewFS(context.Background(), "foliobot", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}

	kb := &knowledge.Default
	page := livepage.NewDOM()
	prefs := convo.NewPrefStore(fs, "prefs.json")
	session := convo.NewSession(kb, store.NewMemStore(), prefs, convo.DefaultConfig(), nil)

	var opts []engine.Option
	if apiKey != "" {
		client := remote.NewGeminiClient(remote.DefaultGeminiConfig(apiKey), nil)
		opts = append(opts, engine.WithProvider(client))
		// Semantic index needs an embedding endpoint, so it rides on the
		// same key. A load failure just skips the path.
		if vs, err := vecstore.New(fs, "items.hnsw"); err == nil {
			opts = append(opts, engine.WithSemantic(client, vs))
		}
	}

	bot = engine.New(kb, page, session, engine.DefaultConfig(), opts...)

	return map[string]interface{}{"ok": true, "items": len(bot.Index().Items)}
}

// ask answers one user turn. Returns a Promise resolving to the reply as a
// JSON string; the pipeline runs off the event loop because the remote
// fallback blocks on the network.
func ask(this js.Value, args []js.Value) interface{} {
	if bot == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("ask(text) requires a string")
	}
	text := args[0].String()

	handler := js.FuncOf(func(this js.Value, promiseArgs []js.Value) interface{} {
		resolve := promiseArgs[0]
		go func() {
			reply := bot.Ask(context.Background(), text)
			data, err := json.Marshal(reply)
			if err != nil {
				resolve.Invoke(js.ValueOf(`{"body":""}`))
				return
			}
			resolve.Invoke(js.ValueOf(string(data)))
		}()
		return nil
	})

	return js.Global().Get("Promise").New(handler)
}

// history returns the stored conversation as a JSON string.
func history(this js.Value, args []js.Value) interface{} {
	if bot == nil {
		return errorResult("not initialized")
	}
	msgs, err := bot.Session().Messages()
	if err != nil {
		return errorResult(err.Error())
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(data)
}

// setDetailed flips the verbosity preference.
func setDetailed(this js.Value, args []js.Value) interface{} {
	if bot == nil {
		return errorResult("not initialized")
	}
	if len(args) < 1 {
		return errorResult("setDetailed(bool) requires an argument")
	}
	bot.Session().SetDetailed(args[0].Bool())
	return map[string]interface{}{"ok": true}
}

func errorResult(msg string) interface{} {
	return map[string]interface{}{"error": msg}
}
