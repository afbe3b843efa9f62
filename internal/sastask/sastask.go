// Package sastask parses a SAS+-style multi-valued planning task
// description into an internal/task.Static, modeled line-for-line on
// internal/dimacs's scanner-based DIMACS parser. The format is a simple
// text encoding of a multi-valued planning task:
//
//	begin_variables
//	<n>
//	var <domain-size> <name-0> <name-1> ... (one line per variable)
//	end_variables
//	begin_state
//	<v-0> <v-1> ... <v-n-1>
//	end_state
//	begin_goal
//	<count>
//	<var> <value> (one line per goal fact)
//	end_goal
//	begin_operators
//	<count>
//	begin_operator
//	<name>
//	pre: <count>
//	<var> <value> (one per precondition)
//	eff: <count>
//	<var> <value> (one per effect)
//	cost: <cost>
//	end_operator
//	...
//	end_operators
package sastask

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/eliahaenggi/h2plan/internal/fact"
	"github.com/eliahaenggi/h2plan/internal/task"
)

// instance mirrors dimacs.Instance: a plain data holder filled in
// incrementally by the line-oriented parser, then handed to task.New.
type instance struct {
	domains []int
	names   [][]string
	init    []int
	goals   []fact.Fact
	ops     []task.Operator

	axioms          bool
	conditionalEffs bool
}

// ParseSASTask reads a SAS+-style task description from r and converts it
// into a task.Static, following the same Scan-a-line,
// dispatch-on-keyword shape as dimacs.ParseDIMACS.
func ParseSASTask(r *bufio.Scanner) (*task.Static, error) {
	r.Buffer(make([]byte, 0, 64*1024), 1<<20)

	inst := &instance{}
	for r.Scan() {
		line := strings.TrimSpace(r.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch line {
		case "begin_variables":
			if err := parseVariablesBlock(r, inst); err != nil {
				return nil, fmt.Errorf("could not parse variables block: %w", err)
			}
		case "begin_state":
			if err := parseStateBlock(r, inst); err != nil {
				return nil, fmt.Errorf("could not parse state block: %w", err)
			}
		case "begin_goal":
			if err := parseGoalBlock(r, inst); err != nil {
				return nil, fmt.Errorf("could not parse goal block: %w", err)
			}
		case "begin_operators":
			if err := parseOperatorsBlock(r, inst); err != nil {
				return nil, fmt.Errorf("could not parse operators block: %w", err)
			}
		case "begin_axioms":
			nonEmpty, err := skipToEnd(r, "end_axioms")
			if err != nil {
				return nil, err
			}
			inst.axioms = nonEmpty
		default:
			return nil, fmt.Errorf("unexpected line %q", line)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	return task.New(inst.domains, inst.ops, inst.init, inst.goals, inst.axioms, inst.conditionalEffs)
}

// skipToEnd scans past a block this package does not interpret, reporting
// whether it contained at least one non-blank line (enough for callers that
// only care about presence, such as the axioms block).
func skipToEnd(r *bufio.Scanner, end string) (nonEmpty bool, err error) {
	for r.Scan() {
		line := strings.TrimSpace(r.Text())
		if line == end {
			return nonEmpty, nil
		}
		if line != "" {
			nonEmpty = true
		}
	}
	return false, fmt.Errorf("missing %q", end)
}

func parseVariablesBlock(r *bufio.Scanner, inst *instance) error {
	if !r.Scan() {
		return fmt.Errorf("missing variable count")
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.Text()))
	if err != nil {
		return fmt.Errorf("bad variable count: %w", err)
	}
	inst.domains = make([]int, n)
	inst.names = make([][]string, n)

	for i := 0; i < n; i++ {
		if !r.Scan() {
			return fmt.Errorf("missing variable line %d", i)
		}
		parts := strings.Fields(r.Text())
		if len(parts) < 3 || parts[0] != "var" {
			return fmt.Errorf("malformed variable line %q", r.Text())
		}
		size, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("bad domain size on line %q: %w", r.Text(), err)
		}
		names := parts[2:]
		if len(names) != size {
			return fmt.Errorf("variable line %q declares %d names, want %d", r.Text(), len(names), size)
		}
		inst.domains[i] = size
		inst.names[i] = names
	}

	if !r.Scan() || strings.TrimSpace(r.Text()) != "end_variables" {
		return fmt.Errorf("missing end_variables")
	}
	return nil
}

func parseStateBlock(r *bufio.Scanner, inst *instance) error {
	if !r.Scan() {
		return fmt.Errorf("missing state line")
	}
	parts := strings.Fields(r.Text())
	if len(parts) != len(inst.domains) {
		return fmt.Errorf("initial state has %d values, want %d", len(parts), len(inst.domains))
	}
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("bad state value %q: %w", p, err)
		}
		values[i] = v
	}
	inst.init = values

	if !r.Scan() || strings.TrimSpace(r.Text()) != "end_state" {
		return fmt.Errorf("missing end_state")
	}
	return nil
}

func parseGoalBlock(r *bufio.Scanner, inst *instance) error {
	n, err := scanCount(r, "goal")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		f, err := scanFactLine(r)
		if err != nil {
			return fmt.Errorf("goal fact %d: %w", i, err)
		}
		inst.goals = append(inst.goals, f)
	}
	if !r.Scan() || strings.TrimSpace(r.Text()) != "end_goal" {
		return fmt.Errorf("missing end_goal")
	}
	return nil
}

func parseOperatorsBlock(r *bufio.Scanner, inst *instance) error {
	n, err := scanCount(r, "operators")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		op, err := parseOperator(r, len(inst.ops))
		if err != nil {
			return fmt.Errorf("operator %d: %w", i, err)
		}
		inst.ops = append(inst.ops, op)
	}
	if !r.Scan() || strings.TrimSpace(r.Text()) != "end_operators" {
		return fmt.Errorf("missing end_operators")
	}
	return nil
}

func parseOperator(r *bufio.Scanner, id int) (task.Operator, error) {
	if !r.Scan() || strings.TrimSpace(r.Text()) != "begin_operator" {
		return task.Operator{}, fmt.Errorf("missing begin_operator")
	}
	if !r.Scan() {
		return task.Operator{}, fmt.Errorf("missing operator name")
	}
	name := strings.TrimSpace(r.Text())

	pre, err := parsePrefixedFacts(r, "pre:")
	if err != nil {
		return task.Operator{}, err
	}
	eff, err := parsePrefixedFacts(r, "eff:")
	if err != nil {
		return task.Operator{}, err
	}

	if !r.Scan() {
		return task.Operator{}, fmt.Errorf("missing cost line")
	}
	costLine := strings.TrimSpace(r.Text())
	costStr, ok := strings.CutPrefix(costLine, "cost:")
	if !ok {
		return task.Operator{}, fmt.Errorf("expected cost line, got %q", costLine)
	}
	cost, err := strconv.Atoi(strings.TrimSpace(costStr))
	if err != nil {
		return task.Operator{}, fmt.Errorf("bad cost %q: %w", costStr, err)
	}

	if !r.Scan() || strings.TrimSpace(r.Text()) != "end_operator" {
		return task.Operator{}, fmt.Errorf("missing end_operator")
	}

	return task.Operator{ID: id, Name: name, Pre: pre, Eff: eff, Cost: cost}, nil
}

func parsePrefixedFacts(r *bufio.Scanner, prefix string) ([]fact.Fact, error) {
	if !r.Scan() {
		return nil, fmt.Errorf("missing %q line", prefix)
	}
	line := strings.TrimSpace(r.Text())
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return nil, fmt.Errorf("expected %q line, got %q", prefix, line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return nil, fmt.Errorf("bad count in %q: %w", line, err)
	}
	facts := make([]fact.Fact, n)
	for i := 0; i < n; i++ {
		f, err := scanFactLine(r)
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
		facts[i] = f
	}
	return facts, nil
}

func scanCount(r *bufio.Scanner, what string) (int, error) {
	if !r.Scan() {
		return 0, fmt.Errorf("missing %s count", what)
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.Text()))
	if err != nil {
		return 0, fmt.Errorf("bad %s count: %w", what, err)
	}
	return n, nil
}

func scanFactLine(r *bufio.Scanner) (fact.Fact, error) {
	if !r.Scan() {
		return fact.Fact{}, fmt.Errorf("missing fact line")
	}
	parts := strings.Fields(r.Text())
	if len(parts) != 2 {
		return fact.Fact{}, fmt.Errorf("malformed fact line %q", r.Text())
	}
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return fact.Fact{}, fmt.Errorf("bad variable %q: %w", parts[0], err)
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil {
		return fact.Fact{}, fmt.Errorf("bad value %q: %w", parts[1], err)
	}
	return fact.Fact{Var: v, Value: d}, nil
}
