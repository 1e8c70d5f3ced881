package cogserver

import (
	"context"
	"strconv"
	"strings"
)

// Agents shipped with the CogServer attention allocation module.
const (
	ImportanceDiffusionAgent = "SimpleImportanceDiffusionAgent"
	ImportanceUpdatingAgent  = "ImportanceUpdatingAgent"
	HebbianUpdatingAgent     = "HebbianUpdatingAgent"
	ForgettingAgent          = "ForgettingAgent"
)

// ECAN parameters read by the agents from the atomspace, see SetParameter.
const (
	DiffusionPercent = "DiffusionPercent"
	StimulusAmount   = "StimulusAmount"
	Rent             = "Rent"
	Wages            = "Wages"
)

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LoadSchemeFiles loads the given files, relative to `folder`, in order.
// `folder` is joined as is, so it usually ends with a slash.
func (c *Client) LoadSchemeFiles(ctx context.Context, folder string, files ...string) error {
	for _, file := range files {
		if _, err := c.Scheme(ctx, `(load-scm-from-file "`+folder+file+`")`); err != nil {
			return err
		}
	}
	return nil
}

// LoadPythonAgent loads a Python MindAgent. `path` is the path of the module without the file extension,
// eg. ../opencog/python/pln/examples/tuffy/smokes/smokes_agent
func (c *Client) LoadPythonAgent(ctx context.Context, path string) error {
	return c.Shell(ctx, "loadpy "+path)
}

// StartPythonAgent starts a Python MindAgent already loaded with LoadPythonAgent.
func (c *Client) StartPythonAgent(ctx context.Context, path, name string) error {
	return c.Shell(ctx, "agents-start "+path+"."+name)
}

// StepAgent runs a single step of a C++ agent.
func (c *Client) StepAgent(ctx context.Context, name string) error {
	return c.Shell(ctx, "agents-step opencog::"+name)
}

// StepPythonAgent runs a single step of a Python agent.
func (c *Client) StepPythonAgent(ctx context.Context, path, name string) error {
	return c.Shell(ctx, "agents-step opencog::PyMindAgent("+path+"."+name+")")
}

// StopAgentLoop stops the automatic stepping of agents, so they can be stepped manually.
func (c *Client) StopAgentLoop(ctx context.Context) error {
	return c.Shell(ctx, "agents-stop-loop")
}

func (c *Client) ImportanceDiffusion(ctx context.Context) error {
	return c.StepAgent(ctx, ImportanceDiffusionAgent)
}

func (c *Client) ImportanceUpdating(ctx context.Context) error {
	return c.StepAgent(ctx, ImportanceUpdatingAgent)
}

func (c *Client) HebbianUpdating(ctx context.Context) error {
	return c.StepAgent(ctx, HebbianUpdatingAgent)
}

func (c *Client) Forgetting(ctx context.Context) error {
	return c.StepAgent(ctx, ForgettingAgent)
}

// SetAFBoundary sets the STI value above which atoms are in the attentional focus.
func (c *Client) SetAFBoundary(ctx context.Context, value float64) error {
	_, err := c.Scheme(ctx, "(cog-set-af-boundary! "+number(value)+")")
	return err
}

// SetParameter stores an ECAN parameter as
// (EvaluationLink (PredicateNode "CONFIG-<name>") (ListLink (NumberNode "<value>")))
func (c *Client) SetParameter(ctx context.Context, name string, value float64) error {
	_, err := c.Scheme(ctx, `(EvaluationLink (PredicateNode "CONFIG-`+name+`") (ListLink (NumberNode "`+number(value)+`")))`)
	return err
}

// SetDiffusionPercent sets the share of an atom's STI diffused at each step, between 0 and 1.
func (c *Client) SetDiffusionPercent(ctx context.Context, value float64) error {
	return c.SetParameter(ctx, DiffusionPercent, value)
}

// SetStimulusAmount sets the stimulus assigned to a target by the reasoning agent.
func (c *Client) SetStimulusAmount(ctx context.Context, value float64) error {
	return c.SetParameter(ctx, StimulusAmount, value)
}

func (c *Client) SetRent(ctx context.Context, value float64) error {
	return c.SetParameter(ctx, Rent, value)
}

func (c *Client) SetWages(ctx context.Context, value float64) error {
	return c.SetParameter(ctx, Wages, value)
}

func (c *Client) ClearAtomspace(ctx context.Context) error {
	_, err := c.Scheme(ctx, "(clear)")
	return err
}

// DumpAtomspaceScheme returns every atom in Scheme notation.
func (c *Client) DumpAtomspaceScheme(ctx context.Context) (string, error) {
	return c.Scheme(ctx, "(cog-prt-atomspace)")
}

// DumpAttentionalFocusScheme returns the atoms in the attentional focus in Scheme notation.
func (c *Client) DumpAttentionalFocusScheme(ctx context.Context) (string, error) {
	return c.Scheme(ctx, "(cog-af)")
}

// ToLogic runs RelEx2Logic on a sentence and returns the contents of the resulting SetLink.
// If `clear` is true, the atomspace is cleared first.
func (c *Client) ToLogic(ctx context.Context, sentence string, clear bool) (string, error) {
	if clear {
		if err := c.ClearAtomspace(ctx); err != nil {
			return "", err
		}
	}
	sentence = strings.ReplaceAll(sentence, `"`, `\"`)
	if _, err := c.Scheme(ctx, `(r2l "`+sentence+`")`); err != nil {
		return "", err
	}
	return c.Scheme(ctx, "(cog-outgoing-set (car (cog-get-atoms 'SetLink)))")
}
