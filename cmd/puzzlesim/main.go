// Command puzzlesim is the offline CLI surface over the puzzle codec,
// composer, simulator, and challenge protocol: decode a descriptor, compose
// a board, run a solution against it, or encode a move list back to its
// wire form, all without needing a live chain or ledger.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"puzzlechain/board"
	"puzzlechain/challenge"
	"puzzlechain/descriptor"
	"puzzlechain/descriptorstore"
	"puzzlechain/ledger"
	"puzzlechain/sim"
	"puzzlechain/solution"
	"puzzlechain/tile"
)

// VERSION is injected by build flags; SELFBUILD marks a local dev build.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "puzzlesim"
	app.Usage = "decode, compose, and simulate puzzlechain descriptors offline"
	app.Version = VERSION
	app.Commands = []cli.Command{
		decodeCommand,
		composeCommand,
		simulateCommand,
		encodeSolutionCommand,
		competeCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("puzzlesim: %v", err)
	}
}

// newTileGrid allocates a height x width tile grid for descriptor.Decode's
// dst parameter.
func newTileGrid(height, width int) [][]tile.Kind {
	grid := make([][]tile.Kind, height)
	for y := range grid {
		grid[y] = make([]tile.Kind, width)
	}
	return grid
}

// parseWords splits a comma-separated list of decimal 256-bit words into
// exactly 4 *uint256.Int, the descriptor wire format's L[0..3].
func parseWords(csv string) ([4]*uint256.Int, error) {
	var words [4]*uint256.Int
	parts := strings.Split(csv, ",")
	if len(parts) != 4 {
		return words, errors.Errorf("expected 4 comma-separated words, got %d", len(parts))
	}
	for i, p := range parts {
		w, err := uint256.FromDecimal(strings.TrimSpace(p))
		if err != nil {
			return words, errors.Wrapf(err, "parsing word %d", i)
		}
		words[i] = w
	}
	return words, nil
}

var decodeCommand = cli.Command{
	Name:      "decode",
	Usage:     "decode a single descriptor and print its tile grid and objects",
	ArgsUsage: "<w0,w1,w2,w3>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return errors.New("decode requires a descriptor word list")
		}
		words, err := parseWords(c.Args().Get(0))
		if err != nil {
			return errors.Wrap(err, "decode")
		}

		dstTiles := newTileGrid(descriptor.Height, descriptor.Width)
		objs := descriptor.Decode(words[:], dstTiles, 0, 0, descriptor.Width, descriptor.Height, true, true)

		fmt.Printf("start=(%d,%d) present=%v\n", objs.StartX, objs.StartY, objs.HasStart)
		fmt.Printf("exit=(%d,%d) present=%v\n", objs.ExitX, objs.ExitY, objs.HasExit)
		fmt.Printf("crystal=(%d,%d)\n", objs.CrystalX, objs.CrystalY)
		for y := 0; y < descriptor.Height; y++ {
			row := make([]string, descriptor.Width)
			for x := 0; x < descriptor.Width; x++ {
				row[x] = dstTiles[y][x].String()
			}
			fmt.Println(strings.Join(row, " "))
		}
		return nil
	},
}

var composeCommand = cli.Command{
	Name:      "compose",
	Usage:     "compose four descriptors into a composite board and print its player start, exit, and crystal target",
	ArgsUsage: "<d0> <d1> <d2> <d3> <setupData>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 5 {
			return errors.New("compose requires 4 descriptors and a setupData value")
		}

		store := descriptorstore.NewMemory()
		var ids [4]*uint256.Int
		for k := 0; k < 4; k++ {
			words, err := parseWords(c.Args().Get(k))
			if err != nil {
				return errors.Wrapf(err, "compose: descriptor %d", k)
			}
			id := uint256.NewInt(uint64(k))
			store.Put(id, words)
			ids[k] = id
		}

		var setupData uint64
		if _, err := fmt.Sscanf(c.Args().Get(4), "%d", &setupData); err != nil {
			return errors.Wrap(err, "compose: parsing setupData")
		}

		b, err := board.Compose(store, ids, uint16(setupData))
		if err != nil {
			return errors.Wrap(err, "compose")
		}

		fmt.Printf("player=(%d,%d) exit=(%d,%d) targetCrystals=%d\n",
			b.PlayerX, b.PlayerY, b.ExitX, b.ExitY, b.TargetCrystals)
		return nil
	},
}

var simulateCommand = cli.Command{
	Name:      "simulate",
	Usage:     "compose a board and run an encoded solution against it",
	ArgsUsage: "<d0> <d1> <d2> <d3> <setupData> <s0,s1,...>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 6 {
			return errors.New("simulate requires 4 descriptors, setupData, and a solution word list")
		}

		store := descriptorstore.NewMemory()
		var ids [4]*uint256.Int
		for k := 0; k < 4; k++ {
			words, err := parseWords(c.Args().Get(k))
			if err != nil {
				return errors.Wrapf(err, "simulate: descriptor %d", k)
			}
			id := uint256.NewInt(uint64(k))
			store.Put(id, words)
			ids[k] = id
		}

		var setupData uint64
		if _, err := fmt.Sscanf(c.Args().Get(4), "%d", &setupData); err != nil {
			return errors.Wrap(err, "simulate: parsing setupData")
		}

		solWords, err := parseSolutionWords(c.Args().Get(5))
		if err != nil {
			return errors.Wrap(err, "simulate: parsing solution")
		}

		b, err := board.Compose(store, ids, uint16(setupData))
		if err != nil {
			return errors.Wrap(err, "simulate")
		}

		moves := solution.Decode(solWords)
		f := sim.Strict(b, moves)
		fmt.Printf("valid=%v reason=%s\n", f.Reason == sim.ReasonNone, f.Reason)
		return nil
	},
}

var encodeSolutionCommand = cli.Command{
	Name:      "encode-solution",
	Usage:     "encode a JSON move list file back to its wire-format words",
	ArgsUsage: "<move-list.json>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return errors.New("encode-solution requires a move-list file path")
		}

		data, err := os.ReadFile(c.Args().Get(0))
		if err != nil {
			return errors.Wrap(err, "encode-solution: reading move list")
		}

		var raw []struct {
			Kind      uint8 `json:"kind"`
			Direction uint8 `json:"direction"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Wrap(err, "encode-solution: parsing move list")
		}

		moves := make([]solution.Move, len(raw))
		for i, m := range raw {
			moves[i] = solution.Move{Kind: solution.Kind(m.Kind), Direction: solution.Direction(m.Direction)}
		}

		words := solution.Encode(moves)
		strs := make([]string, len(words))
		for i, w := range words {
			strs[i] = w.String()
		}
		fmt.Println(strings.Join(strs, ","))
		return nil
	},
}

func parseSolutionWords(csv string) ([]*uint256.Int, error) {
	parts := strings.Split(csv, ",")
	words := make([]*uint256.Int, len(parts))
	for i, p := range parts {
		w, err := uint256.FromDecimal(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing word %d", i)
		}
		words[i] = w
	}
	return words, nil
}

var competeCommand = cli.Command{
	Name:      "compete",
	Usage:     "start a competition, credit a submitter's bond, then commit and reveal their solution",
	ArgsUsage: "<config.json> <d0> <d1> <d2> <d3> <setupData> <prizeAmount> <submitter> <bondCredit> <s0,s1,...>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 10 {
			return errors.New("compete requires a config path, 4 descriptors, setupData, prizeAmount, submitter, bondCredit, and a solution word list")
		}

		store := descriptorstore.NewMemory()
		var ids [4]*uint256.Int
		for k := 0; k < 4; k++ {
			words, err := parseWords(c.Args().Get(1 + k))
			if err != nil {
				return errors.Wrapf(err, "compete: descriptor %d", k)
			}
			id := uint256.NewInt(uint64(k))
			store.Put(id, words)
			ids[k] = id
		}

		var setupData, prizeAmount, bondCredit uint64
		if _, err := fmt.Sscanf(c.Args().Get(5), "%d", &setupData); err != nil {
			return errors.Wrap(err, "compete: parsing setupData")
		}
		if _, err := fmt.Sscanf(c.Args().Get(6), "%d", &prizeAmount); err != nil {
			return errors.Wrap(err, "compete: parsing prizeAmount")
		}
		submitter := c.Args().Get(7)
		if _, err := fmt.Sscanf(c.Args().Get(8), "%d", &bondCredit); err != nil {
			return errors.Wrap(err, "compete: parsing bondCredit")
		}

		solWords, err := parseSolutionWords(c.Args().Get(9))
		if err != nil {
			return errors.Wrap(err, "compete: parsing solution")
		}
		moves := solution.Decode(solWords)

		lg := ledger.NewMemory()
		lg.Credit(submitter, uint256.NewInt(bondCredit))

		p, err := newProtocolFromConfig(c.Args().Get(0), store, lg, challenge.SystemClock{})
		if err != nil {
			return errors.Wrap(err, "compete")
		}

		if err := p.StartCompetition(ids, uint16(setupData), uint256.NewInt(prizeAmount)); err != nil {
			return errors.Wrap(err, "compete: starting competition")
		}

		hash := challenge.HashMoves(moves)
		if err := p.Commit(submitter, hash); err != nil {
			return errors.Wrap(err, "compete: commit")
		}
		log.Printf("committed hash for %s", submitter)

		if err := p.Reveal(submitter, moves); err != nil {
			return errors.Wrap(err, "compete: reveal")
		}
		log.Printf("revealed %d moves for %s", len(moves), submitter)

		return nil
	},
}

// newProtocolFromConfig wires a fresh challenge.Protocol from a JSON config
// file and the given collaborators; the compete command uses it.
func newProtocolFromConfig(path string, store descriptorstore.Store, lg ledger.Ledger, clock challenge.Clock) (*challenge.Protocol, error) {
	var cfg Config
	if err := parseJSONConfig(&cfg, path); err != nil {
		return nil, errors.Wrap(err, "loading competition config")
	}

	bond, err := uint256.FromDecimal(cfg.RequiredBond)
	if err != nil {
		return nil, errors.Wrap(err, "parsing requiredBond")
	}

	p := challenge.NewProtocol(store, lg, clock)
	if err := p.SetRequiredBond(bond); err != nil {
		return nil, errors.Wrap(err, "applying requiredBond")
	}
	if err := p.SetDurations(time.Duration(cfg.CompDurSec)*time.Second, time.Duration(cfg.TestDurSec)*time.Second); err != nil {
		return nil, errors.Wrap(err, "applying durations")
	}
	return p, nil
}
