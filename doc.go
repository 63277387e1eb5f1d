/*
Argusd maintains a block DAG ordered by the GHOSTDAG protocol and serves it
over JSON-RPC, with block-added notifications streamed over gRPC.

Every inserted block is classified blue or red against the configured anticone
bound k, and the DAG can be linearized into a single total order of blocks.

Usage:

	argusd [OPTIONS]

For an up-to-date help message:

	argusd --help

The long form of all option flags (except -C) can be specified in a
configuration file that is automatically parsed when argusd starts up. By
default, the configuration file is located at ~/.argusd/argusd.conf on POSIX-style
operating systems and %LOCALAPPDATA%\argusd\argusd.conf on Windows. The -C
(--configfile) flag can be used to override this location.
*/
package main
