package tokenexp

import (
	"strings"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/ptree"
)

// DefaultSamples is the number of random class members tried per
// generalization level.
const DefaultSamples = 10

// Expander widens terminal tokens as far as an oracle permits.
type Expander struct {
	Oracle  grinfer.Oracle
	Session *grinfer.Session
	Samples int
}

// New creates an expander with DefaultSamples.
func New(oracle grinfer.Oracle, sess *grinfer.Session) *Expander {
	return &Expander{Oracle: oracle, Session: sess, Samples: DefaultSamples}
}

var classOrder = []Class{Digit, Upper, Lower, Letter, Whitespace}

// ExpandTokens returns a copy of g where single-terminal bodies are replaced
// by character class helpers, if the oracle accepts the trees with
// occurrences of the rule replaced by other members of the class. trees are
// the parse trees g has been induced from. An error is returned only if the
// oracle fails.
func (x *Expander) ExpandTokens(g *grammar.Grammar, trees []*ptree.Node) (*grammar.Grammar, error) {
	c := g.Copy()
	for _, r := range g.Rules() {
		nt := r.Name()
		byClass := make(map[Class][]int)
		for i, b := range r.Bodies() {
			if len(b) == 1 && b[0].IsTerminal() {
				if cl := Classify(b[0].Text); cl != NoClass {
					byClass[cl] = append(byClass[cl], i)
				}
			}
		}
		if len(byClass) == 0 {
			continue
		}
		var relevant []*ptree.Node
		for _, t := range trees {
			if t.ContainsNonterminal(nt) {
				relevant = append(relevant, t)
			}
		}
		widened := make(map[Class]string)
		for _, cl := range classOrder {
			idxs := byClass[cl]
			if len(idxs) == 0 {
				continue
			}
			tokens := make([]string, len(idxs))
			for k, i := range idxs {
				tokens[k] = r.Body(i)[0].Text
			}
			var helper string
			var err error
			if cl == Digit {
				helper, err = x.widenDigits(nt, tokens, relevant)
			} else {
				helper, err = x.widenClass(cl, nt, tokens, relevant)
			}
			if err != nil {
				return nil, err
			}
			if helper != "" {
				tracer().Infof("%s: %s tokens widened to %s", nt, cl, helper)
				widened[cl] = helper
			}
		}
		if len(widened) == 0 {
			continue
		}
		alnum, err := x.escalate(nt, widened, relevant)
		if err != nil {
			return nil, err
		}
		replace := make(map[int]bool)
		var helpers []string
		for _, cl := range classOrder {
			h, ok := widened[cl]
			if !ok {
				continue
			}
			for _, i := range byClass[cl] {
				replace[i] = true
			}
			if alnum != "" && cl != Whitespace {
				h = alnum
			}
			helpers = append(helpers, h)
		}
		x.rewrite(c, nt, replace, helpers)
	}
	return c, nil
}

// rewrite drops the bodies of nt at positions replace and adds references
// to helpers, together with their rules.
func (x *Expander) rewrite(g *grammar.Grammar, nt string, replace map[int]bool, helpers []string) {
	r := g.Rule(nt)
	var bodies []grammar.Body
	for i, b := range r.Bodies() {
		if !replace[i] {
			bodies = append(bodies, b)
		}
	}
	r.SetBodies(bodies)
	for _, h := range helpers {
		r.AddBody(grammar.Syms(grammar.N(h)))
		for _, hr := range HelperRules(h) {
			if !g.Has(hr.Name()) {
				g.AddRule(hr)
			}
		}
	}
}

// check tries every tree with the occurrences of nt replaced by candidates.
func (x *Expander) check(tree *ptree.Node, nt string, candidates []string) (bool, error) {
	return grinfer.AcceptsAll(x.Oracle, ptree.StringsWithReplacement(tree, nt, candidates))
}

// widenDigits tries single digits, integers without leading zero, and digit
// sequences.
func (x *Expander) widenDigits(nt string, tokens []string, trees []*ptree.Node) (string, error) {
	rnd := x.Session.Rand()
	singles := x.unseen(digits, tokens)
	var integers, sequences []string
	for i := 0; i < x.Samples; i++ {
		first := string("123456789"[rnd.Intn(9)])
		var rest strings.Builder
		for _, k := range rnd.Perm(10)[:1+rnd.Intn(10)] {
			rest.WriteByte(digits[k])
		}
		integers = append(integers, first+rest.String())
		sequences = append(sequences, "0"+rest.String())
	}
	digitOK, integersOK, sequencesOK := false, false, false
	for i, tree := range trees {
		if i == 0 {
			digitOK, integersOK, sequencesOK = len(singles) > 0, true, true
		}
		if digitOK {
			ok, err := x.check(tree, nt, singles)
			if err != nil {
				return "", err
			}
			if !ok {
				digitOK, integersOK, sequencesOK = false, false, false
				break
			}
		}
		if integersOK {
			ok, err := x.check(tree, nt, integers)
			if err != nil {
				return "", err
			}
			if !ok {
				integersOK, sequencesOK = false, false
			}
		}
		if sequencesOK {
			ok, err := x.check(tree, nt, sequences)
			if err != nil {
				return "", err
			}
			sequencesOK = ok
		}
	}
	switch {
	case sequencesOK:
		return "tdigits", nil
	case integersOK:
		return "tinteger", nil
	case digitOK:
		return "tdigit", nil
	}
	return "", nil
}

// widenClass tries single characters and runs of characters of a letter or
// whitespace class. Nothing is widened unless at least one tree has been
// checked.
func (x *Expander) widenClass(cl Class, nt string, tokens []string, trees []*ptree.Node) (string, error) {
	alphabet := cl.alphabet()
	singles := x.unseen(alphabet, tokens)
	runs := x.runs(alphabet)
	singleOK, runOK := false, false
	for i, tree := range trees {
		if i == 0 {
			singleOK, runOK = len(singles) > 0, true
		}
		if singleOK {
			ok, err := x.check(tree, nt, singles)
			if err != nil {
				return "", err
			}
			if !ok {
				singleOK, runOK = false, false
				break
			}
		}
		if runOK {
			ok, err := x.check(tree, nt, runs)
			if err != nil {
				return "", err
			}
			if !ok {
				runOK = false
				if !singleOK {
					break
				}
			}
		}
	}
	single, run := cl.helpers()
	switch {
	case runOK:
		return run, nil
	case singleOK:
		return single, nil
	}
	return "", nil
}

// escalate tries to merge widened digits and letters into an alphanumeric
// class. The class must be at least as broad as every helper it replaces:
// talnum if all of them are single characters, talnums if any is a run.
// It returns talnum, talnums or "".
func (x *Expander) escalate(nt string, widened map[Class]string, trees []*ptree.Node) (string, error) {
	d, ok := widened[Digit]
	if !ok || len(trees) == 0 {
		return "", nil
	}
	anyRun, letter := isRun(d), false
	for _, cl := range []Class{Upper, Lower, Letter} {
		if h, ok := widened[cl]; ok {
			letter = true
			anyRun = anyRun || isRun(h)
		}
	}
	if !letter {
		return "", nil
	}
	alphabet := digits + letters
	rnd := x.Session.Rand()
	helper := "talnum"
	var candidates []string
	for i := 0; i < x.Samples; i++ {
		candidates = append(candidates, string(alphabet[rnd.Intn(len(alphabet))]))
	}
	if anyRun {
		helper = "talnums"
		candidates = append(candidates, x.runs(alphabet)...)
		for i := 0; i < x.Samples; i++ { // runs mixing both classes
			dg := string(digits[rnd.Intn(len(digits))])
			lt := string(letters[rnd.Intn(len(letters))])
			if rnd.Intn(2) == 0 {
				candidates = append(candidates, dg+lt)
			} else {
				candidates = append(candidates, lt+dg)
			}
		}
	}
	for _, tree := range trees {
		ok, err := x.check(tree, nt, candidates)
		if err != nil || !ok {
			if err == nil {
				tracer().Debugf("%s: %s rejected, keeping separate classes", nt, helper)
			}
			return "", err
		}
	}
	tracer().Infof("%s: digits and letters escalated to %s", nt, helper)
	return helper, nil
}

func isRun(helper string) bool {
	return helper == "tinteger" || strings.HasSuffix(helper, "s")
}

// unseen returns up to Samples characters of alphabet which are not among
// tokens. It returns nothing if a token is longer than one character.
func (x *Expander) unseen(alphabet string, tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if len([]rune(t)) != 1 {
			return nil
		}
		seen[t] = true
	}
	var cands []string
	for _, c := range alphabet {
		if !seen[string(c)] {
			cands = append(cands, string(c))
		}
	}
	if len(cands) <= x.Samples {
		return cands
	}
	picked := make([]string, 0, x.Samples)
	for _, i := range x.Session.Sample(len(cands), x.Samples) {
		picked = append(picked, cands[i])
	}
	return picked
}

// runs returns Samples strings of 2 to 10 distinct characters of alphabet
// (fewer for short alphabets).
func (x *Expander) runs(alphabet string) []string {
	rnd := x.Session.Rand()
	runs := make([]string, x.Samples)
	for i := range runs {
		n := 2 + rnd.Intn(9)
		if n > len(alphabet) {
			n = len(alphabet)
		}
		var b strings.Builder
		for _, k := range rnd.Perm(len(alphabet))[:n] {
			b.WriteByte(alphabet[k])
		}
		runs[i] = b.String()
	}
	return runs
}
