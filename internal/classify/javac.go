package classify

// DefaultCatalog returns the catalog of English javac messages.
// The returned catalog shares its tables with every other caller and must
// not be modified.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Exact:    javacExactMessages,
		Patterns: javacPatterns,
	}
}

// javacExactMessages are complete messages with no variable parts.
var javacExactMessages = map[string]string{
	"not a statement":                                                 "compiler.err.not.stmt",
	"illegal start of expression":                                     "compiler.err.illegal.start.of.expr",
	"illegal start of type":                                           "compiler.err.illegal.start.of.type",
	"missing return statement":                                        "compiler.err.missing.ret.stmt",
	"reached end of file while parsing":                               "compiler.err.premature.eof",
	"unreachable statement":                                           "compiler.err.unreachable.stmt",
	"missing method body, or declare abstract":                        "compiler.err.missing.meth.body.or.decl.abstract",
	"invalid method declaration; return type required":                "compiler.err.invalid.meth.decl.ret.type.req",
	"'else' without 'if'":                                             "compiler.err.else.without.if",
	"'catch' without 'try'":                                           "compiler.err.catch.without.try",
	"'finally' without 'try'":                                         "compiler.err.finally.without.try",
	"'try' without 'catch' or 'finally'":                              "compiler.err.try.without.catch.or.finally",
	"'try' without 'catch', 'finally' or resource declarations":       "compiler.err.try.without.catch.finally.or.resource.decls",
	"class, interface, or enum expected":                              "compiler.err.expected3",
	"'(' or '[' expected":                                             "compiler.err.expected2",
	"break outside switch or loop":                                    "compiler.err.break.outside.switch.loop",
	"continue outside of loop":                                        "compiler.err.cont.outside.loop",
	"variable declaration not allowed here":                           "compiler.err.variable.not.allowed",
	"unclosed string literal":                                         "compiler.err.unclosed.str.lit",
	"unclosed character literal":                                      "compiler.err.unclosed.char.lit",
	"unclosed comment":                                                "compiler.err.unclosed.comment",
	"empty character literal":                                         "compiler.err.empty.char.lit",
	"illegal line end in character literal":                           "compiler.err.illegal.line.end.in.char.lit",
	"malformed floating point literal":                                "compiler.err.malformed.fp.lit",
	"illegal escape character":                                        "compiler.err.illegal.esc.char",
	"repeated modifier":                                               "compiler.err.repeated.modifier",
	"'void' type not allowed here":                                    "compiler.err.void.not.allowed.here",
	"array dimension missing":                                         "compiler.err.array.dimension.missing",
	"enum types may not be instantiated":                              "compiler.err.enum.cant.be.instantiated",
	"abstract methods cannot have a body":                             "compiler.err.abstract.meth.cant.have.body",
	"interface methods cannot have body":                              "compiler.err.intf.meth.cant.have.body",
	"recursive constructor invocation":                                "compiler.err.recursive.ctor.invocation",
	"initializer must be able to complete normally":                   "compiler.err.initializer.must.be.able.to.complete.normally",
	"method does not override or implement a method from a supertype": "compiler.err.method.does.not.override.superclass",
}

// javacPatterns is ordered: the first matching pattern wins.
//
// The theme for signatures is Head First Design Patterns' Strategy example:
//
//	// ducks/Duck.java
//	package ducks;
//	public abstract class Duck {
//	  public abstract void quack();
//	}
//
//	// ducks/Mallard.java
//	package ducks;
//	public class Mallard extends Duck {
//	  private final int NUMBER_OF_QUACKS = 3;
//	  @Override
//	  public void quack() {
//	  }
//	}
//
//	// Pond.java
//	class Pond {
//	  public static void main(String[] args) {
//	    Duck scroogeMcDuck = new Mallard();
//	    scroogeMcDuck.quack(System.out);
//	  }
//	}
var javacPatterns = []Pattern{
	NewPattern(
		"compiler.err.does.not.override.abstract",
		`(?P<child_class_name>\S+) is not abstract and does not override abstract method (?P<method_name>\S+) in (?P<parent_class_name>\S+)$`,
		"Mallard is not abstract and does not override abstract method quack() in Duck",
	),
	NewPattern(
		"compiler.err.array.req.but.found",
		`array required, but (?P<type_name>\S+) found$`,
		"array required, but java.lang.String found",
	),
	NewPattern(
		"compiler.err.operator.cant.be.applied.1",
		`bad operand types for binary operator '[^']+'`,
		"bad operand types for binary operator '+'\n"+
			"  first type:  int\n"+
			"  second type: boolean",
	),
	NewPattern(
		"compiler.err.cant.access",
		`cannot access (?P<class_name>\S+)`,
		"cannot access ducks.Mallard\n"+
			"bad class file: ducks/Mallard.class(ducks:Mallard.class)\n"+
			"class file has wrong version 52.0, should be 50.0\n"+
			"Please remove or make sure it appears in the correct subdirectory of the classpath.",
	),
	NewPattern(
		"compiler.err.cant.assign.val.to.final.var",
		`cannot assign a value to final variable (?P<variable_name>\S+)$`,
		"cannot assign a value to final variable NUMBER_OF_QUACKS",
	),
	// cant.resolve covers every kind of symbol; one signature per kind keeps
	// the categories comparable with the existing literature.
	NewPattern(
		"compiler.err.cant.resolve[class]",
		`cannot find symbol -\s+class (?P<class_name>\S+)`,
		"cannot find symbol -   class Dcuk",
	),
	NewPattern(
		"compiler.err.cant.resolve[method]",
		`cannot find symbol -\s+method (?P<method_signature>\S+)`,
		"cannot find symbol -   method quackk()",
	),
	NewPattern(
		"compiler.err.cant.resolve[variable]",
		`cannot find symbol -\s+variable (?P<variable_name>\S+)`,
		"cannot find symbol -   variable scroogeMcduck",
	),
	// kind is class, enum or interface.
	NewPattern(
		"compiler.err.class.public.should.be.in.file",
		`(?P<kind>\S+) (?P<class_name>\S+) is public, should be declared in a file named (?P<name>\S+)\.java$`,
		"class Mallard is public, should be declared in a file named Mallard.java",
	),
	// The trailing reason segment varies too much to be part of the template.
	NewPattern(
		"compiler.err.cant.apply.symbol",
		`(?P<kind1>\S+) (?P<name>\S+) in (?P<kind2>\S+) (?P<type>\S+) cannot be applied to given types;\n`,
		"constructor Mallard in class Mallard cannot be applied to given types;\n"+
			"  required: no arguments\n"+
			"  found: int\n"+
			"  reason: actual and formal argument lists differ in length",
	),
	NewPattern(
		"compiler.err.duplicate.class",
		`duplicate class: (?P<name>\S+)$`,
		"duplicate class: Duck",
	),
	NewPattern(
		"compiler.err.class.cant.write",
		`error while writing (?P<symbol>\S+:)`,
		`error while writing Duck: C:\Program Files (x86)\BlueJ\examples\duck\Duck.class (Access is denied)`,
	),
	NewPattern(
		"compiler.err.illegal.char",
		`illegal character: `,
		"illegal character: '#'",
	),
	// Generic: the message segment can be nearly anything, including
	// "missing return value" and "unexpected return value".
	NewPattern(
		"compiler.err.prob.found.req",
		`incompatible types\b`,
		"incompatible types: double cannot be converted to java.lang.Integer",
	),
	NewPattern(
		"compiler.err.incomparable.types",
		`incomparable types: (?P<type_1>\S+) and (?P<type_2>\S+)`,
		"incomparable types: char and java.lang.String",
	),
	NewPattern(
		"compiler.err.cant.deref",
		`(?P<type>\S+) cannot be dereferenced`,
		"int cannot be dereferenced",
	),
	NewPattern(
		"compiler.err.already.defined[method]",
		`method (?P<method_name>\S+) is already defined in (?P<kind2>\S+) (?P<type_name>\S+)`,
		"method quack() is already defined in class Mallard",
	),
	NewPattern(
		"compiler.err.already.defined[variable]",
		`variable (?P<variable_name>\S+) is already defined in (?P<kind2>\S+) (?P<symbol>\S+)`,
		"variable i is already defined in method quack()",
	),
	NewPattern(
		"compiler.err.modifier.not.allowed.here",
		`modifier (?P<name>\S+) not allowed here`,
		"modifier abstract not allowed here",
	),
	NewPattern(
		"compiler.err.illegal.combination.of.modifiers",
		`illegal combination of modifiers: (?P<mod_1>\S+) and (?P<mod_2>\S+)`,
		"illegal combination of modifiers: abstract and final",
	),
	NewPattern(
		"compiler.err.cant.apply.symbols",
		`no suitable (?P<symbol_kind>\S+) found for (?P<name>\S+)`,
		"no suitable constructor found for Duck()",
	),
	NewPattern(
		"compiler.err.non-static.cant.be.ref",
		`non-static (?P<symbol_kind>\S+) (?P<symbol>\S+) cannot be referenced from a static context`,
		"non-static method quack() cannot be referenced from a static context",
	),
	NewPattern(
		"compiler.err.doesnt.exist",
		`package (?P<symbol>\S+) does not exist`,
		"package DUck does not exist",
	),
	NewPattern(
		"compiler.err.unreported.exception.need.to.catch.or.throw",
		`unreported exception (?P<type>\S+); must be caught or declared to be thrown`,
		"unreported exception java.io.FileNotFoundException; must be caught or declared to be thrown",
	),
	NewPattern(
		"compiler.err.var.might.not.have.been.initialized",
		`variable (?P<symbol>\S+) might not have been initialized$`,
		"variable NUMBER_OF_QUACKS might not have been initialized",
	),
	NewPattern(
		"compiler.err.var.might.already.be.assigned",
		`variable (?P<symbol>\S+) might already have been assigned$`,
		"variable NUMBER_OF_QUACKS might already have been assigned",
	),
	NewPattern(
		"compiler.err.abstract.cant.be.instantiated",
		`(?P<type>\S+) is abstract; cannot be instantiated`,
		"Duck is abstract; cannot be instantiated",
	),
	NewPattern(
		"compiler.err.not.def.public.cant.access",
		`(?P<symbol>\S+) is not public in (?P<location>\S+); cannot be accessed from outside package`,
		"Mallard is not public in ducks; cannot be accessed from outside package",
	),
	NewPattern(
		"compiler.err.report.access",
		`(?P<symbol>\S+) has (?P<access>private|protected) access in (?P<location>\S+)`,
		"NUMBER_OF_QUACKS has private access in Mallard",
	),
	NewPattern(
		"compiler.err.cant.inherit.from.final",
		`cannot inherit from final (?P<type>\S+)`,
		"cannot inherit from final ducks.Mallard",
	),
	NewPattern(
		"compiler.err.ref.ambiguous",
		`reference to (?P<name>\S+) is ambiguous`,
		"reference to quack is ambiguous",
	),
	NewPattern(
		"compiler.err.call.must.be.first.stmt.in.ctor",
		`call to (?P<name>super|this) must be first statement in constructor`,
		"call to super must be first statement in constructor",
	),
	NewPattern(
		"compiler.err.orphaned",
		`orphaned (?P<label>case|default)$`,
		"orphaned case",
	),
	NewPattern(
		"compiler.err.int.number.too.large",
		`integer number too large`,
		"integer number too large: 2147483648",
	),
	NewPattern(
		"compiler.err.undef.label",
		`undefined label: (?P<label>\S+)`,
		"undefined label: outer",
	),
	// https://github.com/openjdk/jdk/blob/77c86a964655e3586a404d3e0803bd8cd6dbbc01/langtools/src/share/classes/com/sun/tools/javac/resources/compiler.properties#L923
	NewPattern(
		"compiler.err.type.found.req",
		`unexpected type\b`,
		"unexpected type\n"+
			"  required: variable\n"+
			"  found:    value",
	),
}
