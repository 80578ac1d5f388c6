package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

func newWatchCmd() *cobra.Command {
	var username string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <code>",
		Short: "Join a game and stream its events",
		Long: `Connect to a game's websocket and stream events in real-time.

Events include:
  - welcomeToGame: You joined; carries the game state and roster
  - playerJoined / playerLeft: Roster changed
  - chatMessage: Chat or server announcement
  - playerStateUpdate: A player's answer state changed
  - gameStateUpdate: The game moved between phases

Lines typed on stdin are sent as chat messages.
Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			return watchGame(code, username, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Name to join as (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// wireEvent mirrors the websocket envelope with the payload left raw
type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func watchGame(code, username string, jsonOutput bool) error {
	url := websocketURL(cfg.ServerURL) +
		"/api/v1/games/" + code + "/ws?username=" + username

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Connected to %s as %s\n", code, username)
	}

	// Forward stdin lines as chat
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			msg := model.ClientEvent{Event: model.EventChatMessage}
			data, _ := json.Marshal(line)
			msg.Data = data
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// Close the connection on Ctrl+C so the read loop unblocks
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nDisconnecting...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	for {
		var ev wireEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		if jsonOutput {
			line, _ := json.Marshal(ev)
			fmt.Println(string(line))
			continue
		}
		printEvent(ev)
	}
}

// websocketURL rewrites an http(s) server URL to its ws(s) equivalent
func websocketURL(serverURL string) string {
	url := strings.TrimSuffix(serverURL, "/")
	if strings.HasPrefix(url, "https://") {
		return "wss://" + strings.TrimPrefix(url, "https://")
	}
	return "ws://" + strings.TrimPrefix(url, "http://")
}

func printEvent(ev wireEvent) {
	ts := time.Now().Format("15:04:05")

	switch ev.Event {
	case model.EventWelcome:
		var payload struct {
			Players []model.Player `json:"players"`
		}
		_ = json.Unmarshal(ev.Data, &payload)
		names := make([]string, 0, len(payload.Players))
		for _, p := range payload.Players {
			names = append(names, p.Name)
		}
		fmt.Printf("[%s] joined game (players: %s)\n", ts, strings.Join(names, ", "))
	case model.EventSetNameFailed:
		var reason string
		_ = json.Unmarshal(ev.Data, &reason)
		fmt.Printf("[%s] join rejected: %s\n", ts, reason)
	case model.EventPlayerJoined:
		var player model.Player
		_ = json.Unmarshal(ev.Data, &player)
		fmt.Printf("[%s] %s joined\n", ts, player.Name)
	case model.EventPlayerLeft:
		var name string
		_ = json.Unmarshal(ev.Data, &name)
		fmt.Printf("[%s] %s left\n", ts, name)
	case model.EventChatMessage:
		var payload model.ChatPayload
		_ = json.Unmarshal(ev.Data, &payload)
		if payload.From == nil {
			fmt.Printf("[%s] * %s\n", ts, payload.Message)
		} else {
			fmt.Printf("[%s] <%s> %s\n", ts, *payload.From, payload.Message)
		}
	case model.EventGameState:
		fmt.Printf("[%s] game state: %s\n", ts, string(ev.Data))
	default:
		fmt.Printf("[%s] %s: %s\n", ts, ev.Event, string(ev.Data))
	}
}
