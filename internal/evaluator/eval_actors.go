package evaluator

import "github.com/funvibe/funxy/internal/ast"

// evalSpawn creates a new actor instance: an ObjectMut tagged "Actor"
// whose fields come from evaluating Value (normally a StructLiteral
// naming the actor type), ready to receive send/ask messages (spec.md
// §3.4 "ObjectMut", §4.4.1, §5 "Concurrency model").
func (ev *Evaluator) evalSpawn(n *ast.SpawnExpression, env *Environment) Object {
	init := ev.Eval(n.Value, env)
	if IsSignal(init) {
		return init
	}
	actorType := ""
	fields := fieldsOf(init)
	if s, ok := init.(*Struct); ok {
		actorType = s.Name
	}
	mailbox := NewObjectMut()
	mailbox.Tag = "Actor"
	mailbox.ActorType = actorType
	for k, v := range fields {
		mailbox.Pairs[k] = v
	}
	return mailbox
}

// resolveMessage evaluates a send/ask message expression, reinterpreting
// an otherwise-undefined bare identifier as a zero-argument message
// constructor (spec.md §4.5 "Actor send/ask").
func (ev *Evaluator) resolveMessage(expr ast.Expression, env *Environment) Object {
	if id, ok := expr.(*ast.Identifier); ok {
		if _, bound := env.Get(id.Value); !bound {
			msg := NewObj()
			msg.Tag = "Message"
			msg.Pairs["__type"] = &String{Value: "Message"}
			msg.Pairs["type"] = &String{Value: id.Value}
			msg.Pairs["data"] = &Array{}
			return msg
		}
	}
	return ev.Eval(expr, env)
}

func (ev *Evaluator) dispatchReceive(actor *ObjectMut, msg Object) (Object, bool) {
	decl, ok := ev.Actors[actor.ActorType]
	if !ok || decl.Receive == nil {
		return NewError("RuntimeError", "actor %s has no receive handler", actor.ActorType), true
	}
	scope := NewEnclosedEnvironment(ev.GlobalEnv)
	scope.Bind("self", actor)
	for _, arm := range decl.Receive.Arms {
		bindings, matched := MatchPattern(arm.Pattern, msg)
		if !matched {
			continue
		}
		armScope := NewEnclosedEnvironment(scope)
		for k, v := range bindings {
			armScope.Bind(k, v)
		}
		if arm.Guard != nil {
			g := ev.Eval(arm.Guard, armScope)
			if IsSignal(g) {
				return g, true
			}
			if !Truthy(g) {
				continue
			}
		}
		return ev.Eval(arm.Body, armScope), true
	}
	return NIL, false
}

// evalSend implements fire-and-forget actor messaging: synchronous under
// spec.md §5, always yields Nil.
func (ev *Evaluator) evalSend(n *ast.SendExpression, env *Environment) Object {
	actor := ev.Eval(n.Actor, env)
	if IsSignal(actor) {
		return actor
	}
	mailbox, ok := actor.(*ObjectMut)
	if !ok || mailbox.Tag != "Actor" {
		return NewError("TypeError", "send target is not an actor")
	}
	msg := ev.resolveMessage(n.Message, env)
	if IsSignal(msg) {
		return msg
	}
	result, _ := ev.dispatchReceive(mailbox, msg)
	if err, ok := result.(*Error); ok {
		return err
	}
	return NIL
}

// evalAsk implements request/reply actor messaging, returning the
// matched receive arm's value (spec.md §4.5 "ask returns reply").
func (ev *Evaluator) evalAsk(n *ast.AskExpression, env *Environment) Object {
	actor := ev.Eval(n.Actor, env)
	if IsSignal(actor) {
		return actor
	}
	mailbox, ok := actor.(*ObjectMut)
	if !ok || mailbox.Tag != "Actor" {
		return NewError("TypeError", "ask target is not an actor")
	}
	msg := ev.resolveMessage(n.Message, env)
	if IsSignal(msg) {
		return msg
	}
	result, matched := ev.dispatchReceive(mailbox, msg)
	if !matched {
		return NewError("RuntimeError", "no receive arm matched message")
	}
	return result
}
