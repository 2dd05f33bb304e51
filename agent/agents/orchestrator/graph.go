package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/simrs-agent/agent/nodes"
)

// compileHandleMessageGraph wires one turn:
//
//	validate_request -> append_user -> call_model -+-> finalize_reply -> END
//	                                    ^          |
//	                                    +- execute_tools <-+
func (o *Orchestrator) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodex.NodeValidateRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeAppendUser,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AppendUser(in, o.session)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node append_user: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeCallModel,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CallModel(ctx, in, o.model, o.session, o.policy, o.metrics)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node call_model: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeExecuteTools,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ExecuteTools(ctx, in, o.tools, o.session)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node execute_tools: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeFinalizeReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in, o.session)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodex.NodeValidateRequest},
		{nodex.NodeValidateRequest, nodex.NodeAppendUser},
		{nodex.NodeAppendUser, nodex.NodeCallModel},
		{nodex.NodeExecuteTools, nodex.NodeCallModel},
		{nodex.NodeFinalizeReply, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	branch := compose.NewGraphBranch(nodex.RouteAfterModel, map[string]bool{
		nodex.NodeExecuteTools:  true,
		nodex.NodeFinalizeReply: true,
	})
	if err := graph.AddBranch(nodex.NodeCallModel, branch); err != nil {
		return nil, fmt.Errorf("add branch call_model: %w", err)
	}

	runner, err := graph.Compile(ctx,
		compose.WithGraphName("orchestrator.handle_message"),
		compose.WithMaxRunSteps(maxRunSteps(o.policy.MaxRounds)),
	)
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}

// maxRunSteps leaves room for every allowed tool round (call_model +
// execute_tools each) plus the final reply round and the linear nodes.
func maxRunSteps(maxRounds int) int {
	return 2*maxRounds + 10
}
