/*

Process of compilation

Program Text ->
	lex ->
Tokens (lex.Token) ->
	parse ->
Abstract Syntax Tree (ast) ->
	compile ->
Assembly Text (out.asm) ->
	nasm ->
Binary Object (out.o) ->
	ld ->
Binary Executable

Only the first three steps are done here.
The last two are printed as comments at the end of the assembly text
and run by toolchain.Build on demand.

*/
package compiler
