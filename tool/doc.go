/*
Package tool turns Go functions into tools a model can call.

A Definition pairs a function with what reflection can't recover: its
parameter names, default values and doc comment. The Inspector combines the
signature with the parsed doc comment into a SchemaDescriptor, and Assemble
wraps descriptors into the provider's function tool envelope.

# Defining tools

	func add(a, b int) int { return a + b }

	def := tool.Must(add,
		tool.Parameters("a", "b"),
		tool.Doc(`Adds two numbers.
	Arguments:
	  a: first
	  b: second
	Returns:
	  sum`),
	)

A parameter with a default is optional:

	tool.Must(greet, tool.Parameters("name", "greeting"), tool.Default("greeting", "hello"))

A leading context.Context parameter is not part of the schema. It receives
the context the tool is called with.

The arggpt-gen command generates these definitions from doc comments of
functions marked with an arggpt:tool comment.

# Calling tools

Call binds a JSON argument object to the parameters by name:

	args, err := tool.ParseArguments(`{"a": 1, "b": 2}`)
	result, err := def.Call(ctx, args)

Failures are reported as *Error values whose Kind is one of ErrInvalidInput,
ErrUnknownFunction, ErrArgumentParse, ErrExecution or ErrInterpretation.
Their messages are meant to be fed back into the conversation.
*/
package tool
