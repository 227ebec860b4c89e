package graph

import (
	"intervo/internal/policy"
	"intervo/internal/state"
)

// Stop-branch decisions.
const (
	decisionStop     = "stop"
	decisionContinue = "continue"
)

// Build wires the interview topology over the given collaborators.
func Build(deps Deps) (*Graph, error) {
	n := &nodes{deps: deps}

	g := NewGraph(NodeIntake)
	g.AddNode(NodeIntake, n.intake).
		AddNode(NodeProfileExtract, n.profileExtract).
		AddNode(NodeStopIntent, n.stopIntent).
		AddNode(NodeObserverEval, n.observerEvaluate).
		AddNode(NodeRobustness, n.robustnessDetect).
		AddNode(NodePolicyUpdate, n.policyUpdate).
		AddNode(NodeAnswerCandidate, n.answerCandidate).
		AddNode(NodeRefocus, n.refocus).
		AddNode(NodeFactCheck, n.factCheck).
		AddNode(NodeHallucination, n.hallucination).
		AddNode(NodeInterviewer, n.interviewerGenerate).
		AddNode(NodeLogger, n.logger).
		AddNode(NodeFinalFeedback, n.finalFeedback).
		AddNode(NodeFinalLogger, n.finalLogger)

	g.AddEdge(NodeIntake, NodeProfileExtract).
		AddEdge(NodeProfileExtract, NodeStopIntent).
		AddEdge(NodeObserverEval, NodeRobustness).
		AddEdge(NodeRobustness, NodePolicyUpdate).
		AddEdge(NodeAnswerCandidate, NodeInterviewer).
		AddEdge(NodeRefocus, NodeInterviewer).
		AddEdge(NodeFactCheck, NodeHallucination).
		AddEdge(NodeHallucination, NodeInterviewer).
		AddEdge(NodeInterviewer, NodeLogger).
		AddEdge(NodeLogger, End).
		AddEdge(NodeFinalFeedback, NodeFinalLogger).
		AddEdge(NodeFinalLogger, End)

	g.AddConditional(NodeStopIntent, func(s *state.Session) string {
		if s.StopRequested {
			return decisionStop
		}
		return decisionContinue
	}, map[string]string{
		decisionStop:     NodeFinalFeedback,
		decisionContinue: NodeObserverEval,
	})

	g.AddConditional(NodePolicyUpdate, func(s *state.Session) string {
		return s.Route
	}, map[string]string{
		policy.RouteAnswerCandidate: NodeAnswerCandidate,
		policy.RouteRefocus:         NodeRefocus,
		policy.RouteHallucination:   NodeFactCheck,
		policy.RouteNormal:          NodeInterviewer,
	})

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
