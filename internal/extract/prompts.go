package extract

// Prompts sent alongside document images. Each instructs the model to
// return a bare JSON object matching the schema package's field names.

const passportPrompt = `You are analyzing a passport image. Extract all visible information and return ONLY valid JSON (no markdown fences).

{
  "passport": {
    "surname": "family name exactly as printed",
    "given_names": "first name(s) only",
    "middle_names": "middle name(s) or null",
    "passport_number": "string",
    "country_of_issue": "full country name",
    "nationality": "nationality as printed",
    "date_of_birth": "YYYY-MM-DD",
    "place_of_birth": "string",
    "sex": "M or F or X",
    "issue_date": "YYYY-MM-DD",
    "expiry_date": "YYYY-MM-DD"
  },
  "confidence": { "field_name": 0.0 to 1.0 },
  "warnings": ["any uncertain fields"]
}

Rules:
- Cross-reference the Visual Inspection Zone with the MRZ at the bottom if visible
- Convert ALL dates to YYYY-MM-DD regardless of source format
- Country names should be full names, not ISO codes
- If a field is unreadable, use null and add a warning
- NEVER use "N/A", "n/a", or "N.A." as values, use null instead
- Return ONLY the JSON object, nothing else
`

const g28Prompt = `You are analyzing a scanned USCIS G-28 form (Notice of Entry of Appearance as Attorney or Representative).
Extract ALL filled-in data and return ONLY valid JSON (no markdown fences).

{
  "attorney": {
    "online_account": "string or null",
    "family_name": "string",
    "given_name": "string",
    "middle_name": "string or null",
    "street_number": "full street address",
    "apt_type": "apt or ste or flr or null",
    "apt_number": "string or null",
    "city": "string",
    "state": "2-letter US state code if US address, otherwise the state/province name as-is",
    "zip_code": "string",
    "country": "string",
    "daytime_phone": "string",
    "mobile_phone": "string or null",
    "email": "string or null"
  },
  "eligibility": {
    "is_attorney": true or false,
    "licensing_authority": "string or null",
    "bar_number": "string or null",
    "subject_to_orders": "not or am or null",
    "law_firm": "string or null",
    "is_accredited_rep": true or false,
    "recognized_org": "string or null",
    "accreditation_date": "YYYY-MM-DD or null",
    "is_associated": true or false,
    "associated_with_name": "string or null",
    "is_law_student": true or false,
    "student_name": "string or null"
  },
  "confidence": { "field_name": 0.0 to 1.0 },
  "warnings": ["any uncertain or illegible fields"]
}

Rules:
- If a checkbox is checked, set the boolean to true
- Convert dates to YYYY-MM-DD
- Convert state to 2-letter abbreviation
- Empty/unfilled fields should be null
- If a field is explicitly filled with "N/A" on the form, return the string "N/A" (this is intentional data)
- Only use null for fields that are truly blank/unfilled
- If the form has non-US addresses (e.g. foreign ZIP/postal codes), still extract them as-is
- If handwriting is unclear, provide best guess and add a warning
- Return ONLY the JSON object, nothing else
`
