package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/modernart-go/client/client/network"
	"github.com/modernart-go/client/client/session"
	"github.com/modernart-go/client/pkg/config"
	"github.com/modernart-go/client/pkg/game"
	"github.com/modernart-go/client/pkg/game/types"
	"github.com/modernart-go/client/pkg/log"
)

const tickInterval = 50 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "server address (overrides config)")
	name := flag.String("name", "", "player name (overrides config)")
	logLevel := flag.String("log-level", "", "log level (error, warn, info, debug, trace)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}
	if *name != "" {
		cfg.PlayerName = *name
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = "Player"
	}

	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		log.Error("Failed to parse log level: %v", err)
		os.Exit(1)
	}
	log.SetLevel(level)

	manager := network.NewManager(network.NewManagerOptions{
		RetryInterval: cfg.RetryInterval,
	})
	sess := session.New(manager)
	sess.OnChange(func(kind game.ChangeKind) {
		printChange(sess, kind)
	})
	sess.OnEvent(func(event network.Event) {
		switch event.Kind {
		case network.EventConnected:
			fmt.Println("* connected")
		case network.EventDisconnected:
			fmt.Println("* disconnected, retrying")
		case network.EventConnectionError:
			fmt.Printf("* connection error: %v\n", event.Err)
		}
	})
	sess.Connect(cfg.ServerAddr)

	commands := make(chan string)
	go readCommands(commands)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sess.Update()
		case line, ok := <-commands:
			if !ok {
				sess.Disconnect()
				return
			}
			if handleCommand(sess, cfg, line) {
				sess.Disconnect()
				return
			}
		}
	}
}

func readCommands(commands chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		commands <- scanner.Text()
	}
	close(commands)
}

// handleCommand maps one console line onto a session action. Returns true
// to quit.
func handleCommand(sess *session.Session, cfg config.Config, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "create":
		sess.CreateRoom(cfg.PlayerName)
	case "join":
		if len(fields) < 2 {
			fmt.Println("usage: join <room-id>")
			return false
		}
		sess.JoinRoom(strings.ToUpper(fields[1]), cfg.PlayerName)
	case "rooms":
		sess.ListRooms()
	case "start":
		sess.StartGame()
	case "addai":
		difficulty := ""
		if len(fields) > 1 {
			difficulty = fields[1]
		}
		sess.AddAI(difficulty)
	case "removeai":
		sess.RemoveAI()
	case "play":
		index, ok := parseIndex(fields, 1)
		if !ok {
			fmt.Println("usage: play <card-index> [double-card-index]")
			return false
		}
		if second, ok := parseIndex(fields, 2); ok {
			sess.PlayDouble(index, second)
		} else {
			sess.PlayCard(index)
		}
	case "double":
		// Respond to a double request; no index declines.
		if index, ok := parseIndex(fields, 1); ok {
			sess.RespondDouble(index)
		} else {
			sess.RespondDouble(-1)
		}
	case "bid":
		amount, ok := parseIndex(fields, 1)
		if !ok {
			fmt.Println("usage: bid <amount>")
			return false
		}
		sess.Bid(amount)
	case "pass":
		sess.Pass()
	case "accept":
		sess.Accept()
	case "price":
		amount, ok := parseIndex(fields, 1)
		if !ok {
			fmt.Println("usage: price <amount>")
			return false
		}
		sess.SetPrice(amount)
	case "hand":
		printHand(sess)
	case "state":
		printState(sess)
	case "quit", "exit":
		return true
	default:
		fmt.Println("commands: create, join, rooms, start, addai, removeai, play, double, bid, pass, accept, price, hand, state, quit")
	}
	return false
}

func parseIndex(fields []string, pos int) (int, bool) {
	if pos >= len(fields) {
		return 0, false
	}
	n, err := strconv.Atoi(fields[pos])
	if err != nil {
		return 0, false
	}
	return n, true
}

func printChange(sess *session.Session, kind game.ChangeKind) {
	s := sess.Snapshot()
	switch kind {
	case game.ChangeRoom:
		fmt.Printf("* room %s (host: %t)\n", s.RoomID, s.IsHost)
	case game.ChangeRoomList:
		for _, room := range s.Rooms {
			fmt.Printf("  %s  host=%s players=%d\n", room.RoomID, room.Host, room.PlayerCount)
		}
	case game.ChangePlayers:
		names := make([]string, len(s.Players))
		for i, p := range s.Players {
			names[i] = p.Name
		}
		fmt.Printf("* players: %s\n", strings.Join(names, ", "))
	case game.ChangeGameStarted:
		fmt.Printf("* game started, round %d\n", s.Round)
	case game.ChangeHand:
		printHand(sess)
	case game.ChangeTurn:
		if s.IsMyTurn {
			fmt.Println("* your turn")
		} else {
			fmt.Printf("* %s's turn\n", s.PlayerName(s.CurrentTurnPlayer))
		}
	case game.ChangeDoubleRequest:
		if s.PendingDouble != nil {
			fmt.Printf("* double request: add a second %s card? (double <index> or double)\n", s.PendingDouble.Artist)
		}
	case game.ChangeAuction:
		a := s.Auction
		fmt.Printf("* auction: %s %q by %s (can act: %t)\n", a.Type, a.Card.Artist, s.PlayerName(a.SellerIndex), a.CanAct)
	case game.ChangeBid:
		a := s.Auction
		fmt.Printf("* bid %d by %s (can act: %t)\n", a.CurrentBid, s.PlayerName(a.CurrentBidderIndex), a.CanAct)
	case game.ChangeAuctionResult:
		if n := len(s.AuctionLog); n > 0 {
			entry := s.AuctionLog[n-1]
			if entry.NoBuyer {
				fmt.Printf("* no buyer: %s keeps the %s\n", entry.SellerName, entry.Artist)
			} else {
				fmt.Printf("* sold: %s buys %s for %d\n", entry.WinnerName, entry.Artist, entry.Price)
			}
		}
	case game.ChangeRound:
		fmt.Printf("* round %d\n", s.Round)
	case game.ChangeGameEnded:
		fmt.Printf("* game over, winner: %s\n", s.WinnerName)
	case game.ChangeSynced:
		fmt.Println("* state synchronized")
	case game.ChangeServerError:
		fmt.Printf("* server: %s\n", s.LastError)
	}
}

func printHand(sess *session.Session) {
	s := sess.Snapshot()
	for i, card := range s.Hand {
		fmt.Printf("  [%d] %s (%s)\n", i, card.Artist, card.AuctionType)
	}
}

func printState(sess *session.Session) {
	s := sess.Snapshot()
	fmt.Printf("room=%s round=%d myTurn=%t money=", s.RoomID, s.Round, s.IsMyTurn)
	if s.LocalPlayerIndex >= 0 && s.LocalPlayerIndex < len(s.Players) {
		fmt.Printf("%d", s.Players[s.LocalPlayerIndex].Money)
	} else {
		fmt.Print("?")
	}
	fmt.Println()
	for _, artist := range types.Artists {
		if count := s.BoardCounts[artist]; count > 0 {
			fmt.Printf("  board %-13s %d (settled %d, value %d)\n", artist, count, s.SettledCounts[artist], s.MarketValues[artist])
		}
	}
}
