package gateway

// Prompt templates shared by all providers. Placeholders are filled with
// fmt.Sprintf; the %s order is part of each template's contract.

// ClassifyDocumentPrompt expects one %s: the document text.
const ClassifyDocumentPrompt = `You are a Dutch real estate document classifier. Analyze the following text extracted from a PDF and classify it into one of these document types:

- purchase_agreement: Koopovereenkomst / koopakte - the purchase contract
- energy_label: Energielabel - energy performance certificate
- inspection_report: Bouwkundig rapport / bouwtechnische keuring - building inspection report
- hoa_documents: VvE stukken - homeowners association documents (splitsingsakte, huishoudelijk reglement, jaarrekening, MJOP)
- property_listing: Brochure / funda listing - property marketing materials
- other: Any other document type

Return ONLY the document type string, nothing else.

Document text:
%s`

// ExtractPropertyDataPrompt expects two %s: the document type and the text.
const ExtractPropertyDataPrompt = `You are a Dutch real estate data extraction expert. Extract structured property data from the following %s document.

Extract every field you can find. For each field record in confidence_notes whether the value is 'confirmed' (stated in the document), 'inferred' (derived from context), or 'unknown'.

Document text:
%s`

// DetectRisksPrompt expects two %s: the document type and the text.
const DetectRisksPrompt = `You are an expert Dutch real estate risk assessor. Analyze the following %s document and identify ALL potential risks for a home buyer.

Consider these risk categories:

STRUCTURAL risks (building condition):
- Foundation issues (funderingsproblemen), especially in pre-1970 buildings
- Roof condition, moisture/water damage
- Asbestos presence (common in Dutch buildings 1950-1993)
- Concrete rot (betonrot)
- Wood rot, insect damage
- Outdated electrical/plumbing systems
- Poor insulation

LEGAL risks (ownership and restrictions):
- Erfpacht (ground lease) conditions and costs
- VvE (HOA) issues: underfunded reserves, pending assessments, disputes
- Zoning restrictions (bestemmingsplan)
- Right of way (erfdienstbaarheid)
- Monument status (monumentenstatus)
- Pending permits or violations
- Unusual clauses in purchase agreement

FINANCIAL risks (costs and value):
- Price significantly above market average
- High HOA fees relative to property value
- Energy label indicating high energy costs
- Required renovations and estimated costs
- Hidden costs (overdrachtsbelasting, notaris, etc.)
- Upcoming special assessments (VvE)

MARKET risks (market conditions):
- Area decline indicators
- Time on market (long time = potential issues)
- Price trend in the area

Be thorough but fair. Not everything is a risk - only flag genuine concerns.

Document text:
%s`

// StrengthsWeaknessesPrompt expects two %s: the property data as JSON and the
// document text.
const StrengthsWeaknessesPrompt = `You are an expert Dutch real estate advisor. Based on the following document text and extracted property data, identify the key strengths and weaknesses of this property for a potential buyer.

Property data:
%s

Consider factors like:
- Location and neighborhood quality
- Building condition and age
- Energy efficiency
- Price relative to market
- HOA situation (if apartment)
- Garden, parking, storage
- Room layout and living space
- Future value potential
- Required maintenance/renovations

Provide clear, actionable insights in Dutch real estate context. Each strength/weakness should be a concise but informative sentence.

Document text:
%s`
