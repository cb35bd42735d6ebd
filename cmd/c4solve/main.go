// Command c4solve is the command-line front end to the Connect Four solver:
// evaluate a single position, run a batch of test positions, play
// interactively against the engine, or populate the persistent database of
// scored positions.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/lukemarsh/c4solver/internal/board"
	"github.com/lukemarsh/c4solver/internal/engine"
	"github.com/lukemarsh/c4solver/internal/genpos"
	"github.com/lukemarsh/c4solver/internal/storage"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("c4solve: ")
	log.SetFlags(0)
}

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "eval":
		err = runEval(args)
	case "test":
		err = runTest(args)
	case "play":
		err = runPlay(args)
	case "db":
		err = runDB(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `c4solve - strong Connect Four solver

Usage:
  c4solve eval <history>           evaluate a position given as a column history (e.g. "4453")
  c4solve test <file>              solve every position listed in file, one history per line
  c4solve play [history]           play interactively against the engine
  c4solve db <file> [n]            populate the position database with n random legal positions`)
}

// runEval evaluates a single position and prints its value, best move, and
// node count.
func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	tableSize := fs.Uint64("table-size", engine.DefaultTableSize, "transposition table bucket count")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("eval: missing history argument")
	}
	history := fs.Arg(0)

	pos, err := board.FromHistory(history)
	if err != nil {
		return err
	}

	s := engine.NewSolverWithTableSize(*tableSize)
	start := time.Now()
	col, value := s.Solve(pos)
	elapsed := time.Since(start)

	printBoard(pos)
	if col < 0 {
		fmt.Printf("value=%d (game over)\n", value)
	} else {
		fmt.Printf("value=%d move=%d\n", value, col+1)
	}
	fmt.Printf("nodes=%s time=%s\n", humanize.Comma(int64(s.Nodes())), elapsed)
	return nil
}

// runTest reads one history per line from file, solves each, and reports
// per-line timing plus an aggregate node rate, in the style of a batch
// solver benchmark.
func runTest(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("test: missing file argument")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	var totalNodes uint64
	var totalTime time.Duration
	var count int

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		history := line
		if fields := strings.Fields(line); len(fields) > 0 {
			history = fields[0]
		}

		pos, err := board.FromHistory(history)
		if err != nil {
			fmt.Printf("%s\tERROR: %v\n", history, err)
			continue
		}

		s := engine.NewSolver()
		start := time.Now()
		_, value := s.Solve(pos)
		elapsed := time.Since(start)

		fmt.Printf("%s\t%d\t%s\t%s\n", history, value, humanize.Comma(int64(s.Nodes())), elapsed)

		totalNodes += s.Nodes()
		totalTime += elapsed
		count++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("positions:     %d\n", count)
	fmt.Printf("total nodes:   %s\n", humanize.Comma(int64(totalNodes)))
	fmt.Printf("total time:    %s\n", totalTime)
	if totalTime > 0 {
		rate := float64(totalNodes) / totalTime.Seconds()
		fmt.Printf("speed:         %s nodes/sec\n", humanize.Commaf(rate))
	}
	return nil
}

// runPlay runs an interactive loop: the engine's recommended move is shown,
// then the human enters a column to play, alternating until the game ends.
func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fs.Parse(args)

	pos := board.New()
	if fs.NArg() > 0 {
		p, err := board.FromHistory(fs.Arg(0))
		if err != nil {
			return err
		}
		pos = p
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		printBoard(pos)

		if pos.LastMoverWon() {
			color.Red("game over: the side that just moved has connected four")
			return nil
		}
		if pos.IsFull() {
			color.Yellow("game over: draw")
			return nil
		}

		s := engine.NewSolver()
		col, value := s.Solve(pos)
		color.Cyan("engine: value=%d suggests column %d", value, col+1)

		fmt.Print("your move (1-7, q to quit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "q" {
			return nil
		}

		c, err := strconv.Atoi(line)
		if err != nil || c < 1 || c > board.Width {
			fmt.Println("enter a column number from 1 to 7")
			continue
		}

		mask := pos.PlayableMask()
		bit := board.ColumnToMove(mask, c-1)
		if bit == 0 {
			fmt.Println("that column is full")
			continue
		}
		pos.Play(board.Move(bit))
	}
}

// runDB solves n randomly generated legal positions and records them in the
// persistent position database, skipping positions already present.
func runDB(args []string) error {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	minMoves := fs.Int("min-moves", 8, "minimum moves played for a generated position")
	maxMoves := fs.Int("max-moves", 20, "maximum moves played for a generated position")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("db: missing output file argument")
	}
	n := 1000
	if fs.NArg() > 1 {
		v, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("db: invalid count %q: %w", fs.Arg(1), err)
		}
		n = v
	}

	store, err := storage.OpenAt(fs.Arg(0))
	if err != nil {
		return err
	}
	defer store.Close()

	gen := genpos.New(*minMoves, *maxMoves)
	added := 0
	for added < n {
		history, pos, ok := gen.Next()
		if !ok {
			continue
		}
		if _, found, err := store.Get(history); err != nil {
			return err
		} else if found {
			continue
		}

		s := engine.NewSolver()
		_, value := s.Solve(pos)

		err = store.Put(storage.Record{
			History:     history,
			MovesPlayed: pos.MovesPlayed(),
			Value:       value,
			Nodes:       s.Nodes(),
		})
		if err != nil {
			return err
		}
		added++
	}

	count, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("added %d positions, database now holds %s\n", added, humanize.Comma(int64(count)))
	return nil
}

func printBoard(pos *board.Position) {
	fmt.Print(pos.String())
}
