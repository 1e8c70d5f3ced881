package api

import "github.com/opencog/cogexp/server/api/io"

func Help() string {
	w := io.NewBufferWriter()
	io.ReplyNL(w, io.Yellow+"commands might be entered separated by semicolons, (eg: \"diffuse ; update ; snapshot af\")")
	io.ReplyNL(w, io.Magenta+"status")
	io.ReplyNL(w, io.Grey+"    shows the cogserver process, elasticsearch and the current series")
	io.ReplyNL(w, io.Magenta+"cogserver start|stop")
	io.ReplyNL(w, io.Grey+"    (re)starts the cogserver and its REST API, or stops it")
	io.ReplyNL(w, io.Magenta+"cogserver log [-n <n>] [<pattern>]")
	io.ReplyNL(w, io.Grey+"    shows the last lines written by the cogserver to stderr")
	io.ReplyNL(w, io.Magenta+"        -n <n>"+io.Grey+" shows the last <n> lines up to 1000, defaults to 10")
	io.ReplyNL(w, io.Magenta+"        <pattern>"+io.Grey+" shows only the lines matching the pattern (no regex support)")
	io.ReplyNL(w, io.Magenta+"relex start|stop")
	io.ReplyNL(w, io.Grey+"    (re)starts or stops the relex server, only with vagrant")
	io.ReplyNL(w, io.Magenta+"relex parse <sentence> [--full]")
	io.ReplyNL(w, io.Grey+"    parses a sentence with relex, --full keeps the status messages")
	io.ReplyNL(w, io.Magenta+"logic <sentence> [--keep]")
	io.ReplyNL(w, io.Grey+"    runs relex2logic on a sentence, clearing the atomspace first unless --keep")
	io.ReplyNL(w, io.Magenta+"scheme <expression>")
	io.ReplyNL(w, io.Grey+"    evaluates a scheme expression and shows the result")
	io.ReplyNL(w, io.Magenta+"shell <command>")
	io.ReplyNL(w, io.Grey+"    sends a command to the cogserver shell")
	io.ReplyNL(w, io.Magenta+"load <file>...")
	io.ReplyNL(w, io.Grey+"    loads scheme files, relative to the opencog source folder")
	io.ReplyNL(w, io.Magenta+"step <agent> | step --py <path> <agent>")
	io.ReplyNL(w, io.Grey+"    runs a single step of a C++ agent, or of a python agent loaded from <path>")
	io.ReplyNL(w, io.Magenta+"agent load <path> | agent start <path> <agent> | agent stop-loop")
	io.ReplyNL(w, io.Grey+"    loads or starts a python agent, or stops the automatic stepping of agents")
	io.ReplyNL(w, io.Magenta+"diffuse | update | hebbian | forget")
	io.ReplyNL(w, io.Grey+"    runs a step of the importance diffusion, importance updating, hebbian updating or forgetting agent")
	io.ReplyNL(w, io.Magenta+"set af-boundary|diffusion|stimulus|rent|wages <value>")
	io.ReplyNL(w, io.Grey+"    sets the attentional focus boundary or an ECAN parameter")
	io.ReplyNL(w, io.Magenta+"clear")
	io.ReplyNL(w, io.Grey+"    removes every atom from the atomspace")
	io.ReplyNL(w, io.Magenta+"snapshot [af | atomspace] [--scheme] [-t <timestep>]")
	io.ReplyNL(w, io.Grey+"    captures the attentional focus (default) or the whole atomspace and appends it to the series")
	io.ReplyNL(w, io.Magenta+"        --scheme"+io.Grey+" also captures the scheme dump")
	io.ReplyNL(w, io.Magenta+"        -t <timestep>"+io.Grey+" defaults to the last timestep plus one, timesteps must increase")
	io.ReplyNL(w, io.Magenta+"series [reset]")
	io.ReplyNL(w, io.Grey+"    summarizes the series of this session, or empties it")
	io.ReplyNL(w, io.Magenta+"dump <timestep>")
	io.ReplyNL(w, io.Grey+"    pretty prints a point of the series")
	io.ReplyNL(w, io.Magenta+"diff <timestep> <timestep>")
	io.ReplyNL(w, io.Grey+"    shows what changed between two points, using their scheme dumps if captured")
	io.ReplyNL(w, io.Magenta+"dot")
	io.ReplyNL(w, io.Grey+"    shows the atomspace in DOT format")
	io.ReplyNL(w, io.Magenta+"export csv <file> [--scheme] [--compat]")
	io.ReplyNL(w, io.Grey+"    writes the series to a CSV file, one row per atom: timestep, handle, sti")
	io.ReplyNL(w, io.Magenta+"        --scheme"+io.Grey+" adds the scheme dump of each point as a 4th column")
	io.ReplyNL(w, io.Magenta+"        --compat"+io.Grey+" omits the 4th column on points without scheme dump, instead of leaving it empty, and ends rows with CRLF")
	io.ReplyNL(w, io.Magenta+"export store [--append]")
	io.ReplyNL(w, io.Grey+"    "+io.Red+"replaces"+io.Grey+" the whole elasticsearch collection with the series, or adds to it with --append")
	io.ReplyNL(w, io.Magenta+"store list")
	io.ReplyNL(w, io.Grey+"    shows the points saved in elasticsearch")
	io.ReplyNL(w, io.Magenta+"import csv <file>")
	io.ReplyNL(w, io.Grey+"    replaces the series with the contents of a CSV file")
	io.ReplyNL(w, io.Magenta+"define [<pattern> | <name> <sequence> | rm <name>]")
	io.ReplyNL(w, io.Grey+"    without arguments, shows the current saved name definitions")
	io.ReplyNL(w, io.Magenta+"       <pattern>"+io.Grey+"  shows the current saved name definitions matching the pattern (no regex support)")
	io.ReplyNL(w, io.Magenta+"       <name> <sequence>"+io.Grey+"   alias a sequence of strings to the given name")
	io.ReplyNL(w, io.Grey+"       sequence can be any string(s) supporting $ placeholders for variable substitution, semicolons should be surrounded by spaces")
	io.ReplyNL(w, io.Magenta+"       rm <name>"+io.Grey+"  removes given name")
	io.ReplyNL(w, io.Magenta+"help")
	io.ReplyNL(w, io.Grey+"    shows this help")
	io.ReplyNL(w, io.Magenta+"quit")
	io.ReplyNL(w, io.Grey+"    quits this connection")
	io.ReplyNL(w, io.Magenta+"exit")
	io.ReplyNL(w, io.Grey+"    same as quit")
	return w.String()
}
