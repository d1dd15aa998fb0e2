package testutil

// Sample departure board pages for parser and client testing

// SampleBoardPage is a trimmed copy of an abfahrt.html page with three departures
const SampleBoardPage = `<!DOCTYPE html>
<html lang="de">
<head>
	<meta charset="utf-8">
	<title>Abfahrt - swtue.de</title>
</head>
<body>
	<div id="header"><td class="linie">ignored</td></div>
	<div id="vdfimain">
		<h2>Hauptbahnhof</h2>
		<table class="abfahrten">
			<tr>
				<th>Linie</th>
				<th>Richtung</th>
				<th>Abfahrt</th>
			</tr>
			<tr>
				<td class="linie">5</td>
				<td class="richtung">WHO Ob der Grafenhalde</td>
				<td class="abfahrt">3 min</td>
			</tr>
			<tr>
				<td class="linie">X15</td>
				<td class="richtung">Rottenburg Bahnhof</td>
				<td class="abfahrt">7 min</td>
			</tr>
			<tr>
				<td class="linie">2</td>
				<td class="richtung">Lustnau Herrlesberg</td>
				<td class="abfahrt">14:32</td>
			</tr>
		</table>
	</div>
</body>
</html>`

// SampleMismatchedPage has three line cells, two destination cells and three time cells
const SampleMismatchedPage = `<html><body>
<div id="vdfimain"><table>
<tr><td class="linie">1</td><td class="richtung">Sand</td><td class="abfahrt">1 min</td></tr>
<tr><td class="linie">3</td><td class="richtung">Waldhäuser Ost</td><td class="abfahrt">4 min</td></tr>
<tr><td class="linie">4</td><td class="abfahrt">9 min</td></tr>
</table></div>
</body></html>`

// SampleEmptyCellPage has a departure whose line cell has no text
const SampleEmptyCellPage = `<html><body>
<div id="vdfimain"><table>
<tr><td class="linie"></td><td class="richtung">Sonderfahrt</td><td class="abfahrt">2 min</td></tr>
<tr><td class="linie">7</td><td class="richtung">Derendingen</td><td class="abfahrt"> sofort </td></tr>
</table></div>
</body></html>`

// SampleNestedCellPage wraps cell content in inline elements
const SampleNestedCellPage = `<html><body>
<div id="vdfimain"><table>
<tr><td class="linie"><b>N94</b></td><td class="richtung"><span>Mössingen</span> Bahnhof</td><td class="abfahrt">0:45</td></tr>
</table></div>
</body></html>`

// SampleNoDeparturesPage has the departure container but no rows
const SampleNoDeparturesPage = `<html><body>
<div id="vdfimain"><p>Derzeit keine Abfahrten.</p></div>
</body></html>`

// SampleNoTablePage is a page without the departure container, e.g. after a site redesign
const SampleNoTablePage = `<html><body>
<div id="content"><table>
<tr><td class="linie">5</td><td class="richtung">Sand</td><td class="abfahrt">1 min</td></tr>
</table></div>
</body></html>`

// SampleLatin1Page is SampleBoardPage's structure encoded as ISO-8859-1
const SampleLatin1Page = "<html><head><meta charset=\"iso-8859-1\"></head><body>" +
	"<div id=\"vdfimain\"><table>" +
	"<tr><td class=\"linie\">3</td><td class=\"richtung\">Waldh\xe4user Ost</td><td class=\"abfahrt\">5 min</td></tr>" +
	"</table></div></body></html>"
